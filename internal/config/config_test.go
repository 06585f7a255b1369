package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "token-secret")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_abc")
	t.Setenv("DB_URL", "postgres://app:pw@localhost:5432/melody_makers")
	t.Setenv("DB_MAX_CONNS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DBMaxConns != 10 {
		t.Errorf("expected default 10 max conns, got %d", cfg.DBMaxConns)
	}
}

func TestLoadConfigReadsPoolSize(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "token-secret")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_abc")
	t.Setenv("DB_URL", "postgres://app:pw@localhost:5432/melody_makers")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DBMaxConns != 25 {
		t.Errorf("expected 25 max conns, got %d", cfg.DBMaxConns)
	}
}

func TestLoadConfigIgnoresInvalidPoolSize(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "token-secret")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_abc")
	t.Setenv("DB_URL", "postgres://app:pw@localhost:5432/melody_makers")
	t.Setenv("DB_MAX_CONNS", "-3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DBMaxConns != 10 {
		t.Errorf("expected fallback to 10 max conns, got %d", cfg.DBMaxConns)
	}
}

func TestLoadConfigComposesDatabaseURL(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "token-secret")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_abc")
	t.Setenv("DB_URL", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "melody")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := "postgres://app:pw@db.internal:5433/melody"
	if cfg.DBUrl != want {
		t.Errorf("expected %q, got %q", want, cfg.DBUrl)
	}
}

func TestLoadConfigRequiresTokenSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_abc")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when ACCESS_TOKEN_SECRET is missing")
	}
}
