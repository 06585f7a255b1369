package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBUrl            string
	DBMaxConns       int32
	JWTSecret        string
	PaymentSecretKey string
	PaymentAPIURL    string
	AppEnv           string
	EnableDocs       bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("ACCESS_TOKEN_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}

	paymentSecretKey, exists := os.LookupEnv("PAYMENT_SECRET_KEY")
	if !exists || paymentSecretKey == "" {
		return nil, fmt.Errorf("PAYMENT_SECRET_KEY is required")
	}

	return &Config{
		Port:             getEnv("PORT", "5000"),
		DBUrl:            databaseURL(),
		DBMaxConns:       getEnvInt32("DB_MAX_CONNS", 10),
		JWTSecret:        jwtSecret,
		PaymentSecretKey: paymentSecretKey,
		PaymentAPIURL:    getEnv("PAYMENT_API_URL", "https://api.stripe.com"),
		AppEnv:           normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:       getEnvBool("ENABLE_API_DOCS", false),
	}, nil
}

// databaseURL prefers an explicit DB_URL and otherwise composes one from the
// individual DB_* variables.
func databaseURL() string {
	if url := getEnv("DB_URL", ""); url != "" {
		return url
	}

	user := getEnv("DB_USER", "")
	pass := getEnv("DB_PASS", "")
	if user == "" {
		return ""
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	name := getEnv("DB_NAME", "melody_makers")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) int32 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return int32(parsed)
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}
