package handlers

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/repository"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/services"
)

type classStore interface {
	ListAll(ctx context.Context) ([]models.Class, error)
	ListByInstructorEmail(ctx context.Context, email string) ([]models.Class, error)
	Create(ctx context.Context, input repository.CreateClassInput) (*models.Class, error)
	UpdateStatus(ctx context.Context, classID int64, status models.ClassStatus) (*models.Class, error)
	UpdateFeedback(ctx context.Context, classID int64, feedback string) (*models.Class, error)
}

type classCatalog interface {
	ListApproved(ctx context.Context) ([]models.Class, error)
}

type ClassHandler struct {
	classes classStore
	catalog classCatalog
}

func NewClassHandler(classes *repository.ClassRepository, catalog *services.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes, catalog: catalog}
}

type createClassRequest struct {
	Name           string  `json:"name"`
	ImageURL       *string `json:"image_url"`
	InstructorName *string `json:"instructor_name"`
	Seats          int     `json:"seats"`
	Price          float64 `json:"price"`
}

type updateFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	classes, err := h.classes.ListAll(c.Context())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to list classes")
	}
	return c.JSON(fiber.Map{"classes": classes})
}

func (h *ClassHandler) ListApprovedClasses(c *fiber.Ctx) error {
	classes, err := h.catalog.ListApproved(c.Context())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to list approved classes")
	}
	return c.JSON(fiber.Map{"classes": classes})
}

// ListInstructorClasses is self-scoped: instructors only see their own.
func (h *ClassHandler) ListInstructorClasses(c *fiber.Ctx) error {
	requested, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid email parameter")
	}

	callerEmail, ok := c.Locals("email").(string)
	if !ok || !strings.EqualFold(strings.TrimSpace(requested), callerEmail) {
		return respondError(c, fiber.StatusForbidden, kindForbidden, "Forbidden")
	}

	classes, err := h.classes.ListByInstructorEmail(c.Context(), strings.ToLower(callerEmail))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to list classes")
	}
	return c.JSON(fiber.Map{"classes": classes})
}

// CreateClass submits a new class for admin review. The instructor email is
// always the verified caller, never a body field.
func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	callerEmail, ok := c.Locals("email").(string)
	if !ok || callerEmail == "" {
		return respondError(c, fiber.StatusUnauthorized, kindUnauthorized, "Invalid token")
	}

	var req createClassRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "name is required")
	}
	if req.Seats < 0 {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "seats must not be negative")
	}
	if req.Price < 0 {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "price must not be negative")
	}

	class, err := h.classes.Create(c.Context(), repository.CreateClassInput{
		Name:            strings.TrimSpace(req.Name),
		ImageURL:        req.ImageURL,
		InstructorName:  req.InstructorName,
		InstructorEmail: strings.ToLower(callerEmail),
		Seats:           req.Seats,
		Price:           req.Price,
	})
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to create class")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"class": class})
}

func (h *ClassHandler) UpdateClassStatus(c *fiber.Ctx) error {
	classID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || classID <= 0 {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid class id")
	}

	status, err := models.ParseClassStatus(c.Query("status"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "status must be one of pending, approved, denied")
	}

	class, err := h.classes.UpdateStatus(c.Context(), classID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, fiber.StatusNotFound, kindNotFound, "Class not found")
		}
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to update class status")
	}

	return c.JSON(fiber.Map{"class": class})
}

func (h *ClassHandler) UpdateClassFeedback(c *fiber.Ctx) error {
	classID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || classID <= 0 {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid class id")
	}

	var req updateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Feedback) == "" {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "feedback is required")
	}

	class, err := h.classes.UpdateFeedback(c.Context(), classID, req.Feedback)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, fiber.StatusNotFound, kindNotFound, "Class not found")
		}
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to update class feedback")
	}

	return c.JSON(fiber.Map{"class": class})
}
