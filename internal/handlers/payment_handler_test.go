package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/services"
)

type stubIntentService struct {
	clientSecret string
	err          error
	lastPrice    float64
	calls        int
}

func (s *stubIntentService) CreateIntent(_ context.Context, price float64) (string, error) {
	s.calls++
	s.lastPrice = price
	return s.clientSecret, s.err
}

type stubFinalizer struct {
	result    *models.EnrollmentResult
	err       error
	lastInput services.FinalizePaymentInput
}

func (s *stubFinalizer) FinalizePayment(_ context.Context, input services.FinalizePaymentInput) (*models.EnrollmentResult, error) {
	s.lastInput = input
	return s.result, s.err
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	intents := &stubIntentService{clientSecret: "pi_123_secret_456"}
	handler := &PaymentHandler{intents: intents}

	app := fiber.New()
	app.Post("/create-payment-intent", handler.CreateIntent)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price": 49.99}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ClientSecret != "pi_123_secret_456" {
		t.Fatalf("expected client secret, got %q", body.ClientSecret)
	}
	if intents.lastPrice != 49.99 {
		t.Fatalf("expected price 49.99, got %.2f", intents.lastPrice)
	}
}

func TestCreateIntentRejectsNonPositivePrice(t *testing.T) {
	intents := &stubIntentService{}
	handler := &PaymentHandler{intents: intents}

	app := fiber.New()
	app.Post("/create-payment-intent", handler.CreateIntent)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price": 0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if intents.calls != 0 {
		t.Fatal("expected no provider call for an invalid price")
	}
}

func TestCreateIntentReportsProviderFailure(t *testing.T) {
	intents := &stubIntentService{err: context.DeadlineExceeded}
	handler := &PaymentHandler{intents: intents}

	app := fiber.New()
	app.Post("/create-payment-intent", handler.CreateIntent)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price": 49.99}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var body struct {
		Error bool   `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Error || body.Kind != "upstream" {
		t.Fatalf("expected upstream error envelope, got %+v", body)
	}
}

func TestFinalizePaymentReturnsResult(t *testing.T) {
	finalizer := &stubFinalizer{
		result: &models.EnrollmentResult{
			Payment: models.Payment{ID: 3, SelectedClassID: 11, ClassID: 7, TransactionID: "tx-1"},
			Class:   models.Class{ID: 7, Seats: 9, TotalEnrolled: 4},
		},
	}
	handler := &PaymentHandler{finalizer: finalizer}

	app := fiber.New()
	withEmail(app, "Student@Example.com")
	app.Post("/payments", handler.FinalizePayment)

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{
		"selected_class_id": 11,
		"transaction_id": "tx-1"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if finalizer.lastInput.SelectedClassID != 11 {
		t.Fatalf("expected selection id 11, got %d", finalizer.lastInput.SelectedClassID)
	}
	if finalizer.lastInput.StudentEmail != "student@example.com" {
		t.Fatalf("expected lowercased caller email, got %q", finalizer.lastInput.StudentEmail)
	}
}

func TestFinalizePaymentMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate", services.ErrDuplicatePayment, http.StatusConflict},
		{"not found", services.ErrSelectionNotFound, http.StatusNotFound},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"sold out", services.ErrSoldOut, http.StatusUnprocessableEntity},
		{"invalid", services.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := &PaymentHandler{finalizer: &stubFinalizer{err: tc.err}}

			app := fiber.New()
			withEmail(app, "student@example.com")
			app.Post("/payments", handler.FinalizePayment)

			req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{
				"selected_class_id": 11,
				"transaction_id": "tx-1"
			}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}

			var body struct {
				Error bool   `json:"error"`
				Kind  string `json:"kind"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if !body.Error || body.Kind == "" {
				t.Fatalf("expected error envelope with kind, got %+v", body)
			}
		})
	}
}
