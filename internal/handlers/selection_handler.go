package handlers

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/repository"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/services"
)

type selectionStore interface {
	ListByStudentEmail(ctx context.Context, email string) ([]models.SelectedClassDetail, error)
	DeleteByID(ctx context.Context, selectionID int64, studentEmail string) (int64, error)
}

type classSelector interface {
	SelectClass(ctx context.Context, studentEmail string, classID int64) (*models.SelectedClass, error)
}

type SelectionHandler struct {
	selections  selectionStore
	enrollments classSelector
}

func NewSelectionHandler(selections *repository.SelectionRepository, enrollments *services.EnrollmentService) *SelectionHandler {
	return &SelectionHandler{selections: selections, enrollments: enrollments}
}

type createSelectionRequest struct {
	ClassID int64 `json:"class_id"`
}

// ListSelections is self-scoped: students only see their own pending picks.
func (h *SelectionHandler) ListSelections(c *fiber.Ctx) error {
	requested, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid email parameter")
	}

	callerEmail, ok := c.Locals("email").(string)
	if !ok || !strings.EqualFold(strings.TrimSpace(requested), callerEmail) {
		return respondError(c, fiber.StatusForbidden, kindForbidden, "Forbidden")
	}

	selections, err := h.selections.ListByStudentEmail(c.Context(), strings.ToLower(callerEmail))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to list selected classes")
	}
	return c.JSON(fiber.Map{"selections": selections})
}

func (h *SelectionHandler) CreateSelection(c *fiber.Ctx) error {
	callerEmail, ok := c.Locals("email").(string)
	if !ok || callerEmail == "" {
		return respondError(c, fiber.StatusUnauthorized, kindUnauthorized, "Invalid token")
	}

	var req createSelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid request body")
	}

	selection, err := h.enrollments.SelectClass(c.Context(), strings.ToLower(callerEmail), req.ClassID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return respondError(c, fiber.StatusBadRequest, kindBadRequest, "class_id must be a positive integer")
		case errors.Is(err, services.ErrClassNotAvailable):
			return respondError(c, fiber.StatusUnprocessableEntity, kindUnprocessable, "Class is not open for enrollment")
		default:
			return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to select class")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"selection": selection})
}

func (h *SelectionHandler) DeleteSelection(c *fiber.Ctx) error {
	callerEmail, ok := c.Locals("email").(string)
	if !ok || callerEmail == "" {
		return respondError(c, fiber.StatusUnauthorized, kindUnauthorized, "Invalid token")
	}

	selectionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || selectionID <= 0 {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid selection id")
	}

	deleted, err := h.selections.DeleteByID(c.Context(), selectionID, strings.ToLower(callerEmail))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to delete selection")
	}
	if deleted == 0 {
		return respondError(c, fiber.StatusNotFound, kindNotFound, "Selection not found")
	}

	return c.JSON(fiber.Map{"deleted": deleted})
}
