package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PaymentIntentService requests a client secret from the payment provider
// so the frontend can complete the charge.
type PaymentIntentService interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

type StripePaymentService struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewStripePaymentService(baseURL, secretKey string) *StripePaymentService {
	return &StripePaymentService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: http.DefaultClient,
	}
}

// CreateIntent creates a payment intent for the given price in USD. The
// amount is converted to cents and every call carries a fresh idempotency
// key so provider-side retries never double-charge.
func (s *StripePaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("price must be greater than zero")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(minorUnits(price), 10))
	form.Set("currency", "usd")
	form.Add("payment_method_types[]", "card")

	intentURL := s.baseURL + "/v1/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, intentURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build payment intent request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("create payment intent: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response struct {
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode payment intent response: %w", err)
	}
	if response.ClientSecret == "" {
		return "", fmt.Errorf("client secret missing from response")
	}

	return response.ClientSecret, nil
}

// minorUnits converts a dollar price into cents.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
