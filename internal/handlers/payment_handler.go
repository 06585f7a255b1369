package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/services"
)

type paymentFinalizer interface {
	FinalizePayment(ctx context.Context, input services.FinalizePaymentInput) (*models.EnrollmentResult, error)
}

type PaymentHandler struct {
	intents   services.PaymentIntentService
	finalizer paymentFinalizer
}

func NewPaymentHandler(intents services.PaymentIntentService, finalizer *services.EnrollmentService) *PaymentHandler {
	return &PaymentHandler{intents: intents, finalizer: finalizer}
}

type createIntentRequest struct {
	Price float64 `json:"price"`
}

type finalizePaymentRequest struct {
	SelectedClassID int64  `json:"selected_class_id"`
	TransactionID   string `json:"transaction_id"`
}

func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req createIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid request body")
	}
	if req.Price <= 0 {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "price must be greater than 0")
	}

	clientSecret, err := h.intents.CreateIntent(c.Context(), req.Price)
	if err != nil {
		return respondError(c, fiber.StatusBadGateway, kindUpstream, "Failed to create payment intent")
	}

	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}

func (h *PaymentHandler) FinalizePayment(c *fiber.Ctx) error {
	callerEmail, ok := c.Locals("email").(string)
	if !ok || callerEmail == "" {
		return respondError(c, fiber.StatusUnauthorized, kindUnauthorized, "Invalid token")
	}

	var req finalizePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid request body")
	}

	result, err := h.finalizer.FinalizePayment(c.Context(), services.FinalizePaymentInput{
		SelectedClassID: req.SelectedClassID,
		TransactionID:   strings.TrimSpace(req.TransactionID),
		StudentEmail:    strings.ToLower(callerEmail),
	})
	if err != nil {
		return mapEnrollmentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment": result.Payment,
		"class":   result.Class,
	})
}

func mapEnrollmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "selected_class_id and transaction_id are required")
	case errors.Is(err, services.ErrSelectionNotFound):
		return respondError(c, fiber.StatusNotFound, kindNotFound, "Selection not found")
	case errors.Is(err, services.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, kindForbidden, "Forbidden")
	case errors.Is(err, services.ErrDuplicatePayment):
		return respondError(c, fiber.StatusConflict, kindConflict, "Payment already recorded for this transaction")
	case errors.Is(err, services.ErrSoldOut):
		return respondError(c, fiber.StatusUnprocessableEntity, kindUnprocessable, "Class has no seats left")
	default:
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to finalize payment")
	}
}
