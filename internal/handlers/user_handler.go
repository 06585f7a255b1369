package handlers

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/repository"
)

type userStore interface {
	ListAll(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	CreateIfAbsent(ctx context.Context, input repository.CreateUserInput) (*models.User, bool, error)
	UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserHandler struct {
	users userStore
}

func NewUserHandler(users *repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Email    string  `json:"email"`
	Name     *string `json:"name"`
	PhotoURL *string `json:"photo_url"`
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListAll(c.Context())
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to list users")
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *UserHandler) ListInstructors(c *fiber.Ctx) error {
	instructors, err := h.users.ListByRole(c.Context(), models.RoleInstructor)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to list instructors")
	}
	return c.JSON(fiber.Map{"instructors": instructors})
}

// CreateUser registers a user on first sign-in. Repeated submissions for the
// same email are no-ops.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid request body")
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid email format")
	}

	user, created, err := h.users.CreateIfAbsent(c.Context(), repository.CreateUserInput{
		Email:    strings.ToLower(parsedEmail.Address),
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to create user")
	}

	if !created {
		return c.JSON(fiber.Map{"created": false, "message": "user already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"created": true, "user": user})
}

func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "email query parameter is required")
	}

	role, err := models.ParseRole(c.Query("role"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "role must be one of unset, student, instructor, admin")
	}

	user, err := h.users.UpdateRole(c.Context(), email, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, fiber.StatusNotFound, kindNotFound, "User not found")
		}
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to update role")
	}

	return c.JSON(fiber.Map{"user": user})
}

// GetRole classifies the caller's own role. A path email that does not match
// the token's email gets an all-false body so the endpoint reveals nothing
// about other accounts.
func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	requested, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid email parameter")
	}
	requested = strings.ToLower(strings.TrimSpace(requested))

	callerEmail, ok := c.Locals("email").(string)
	if !ok || callerEmail == "" {
		return respondError(c, fiber.StatusUnauthorized, kindUnauthorized, "Invalid token")
	}

	if requested != strings.ToLower(callerEmail) {
		return c.JSON(roleFlags(models.RoleUnset))
	}

	user, err := h.users.GetByEmail(c.Context(), requested)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(roleFlags(models.RoleUnset))
		}
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to look up role")
	}

	return c.JSON(roleFlags(user.Role))
}

func roleFlags(role models.Role) fiber.Map {
	return fiber.Map{
		"admin":      role == models.RoleAdmin,
		"instructor": role == models.RoleInstructor,
		"student":    role == models.RoleStudent,
	}
}
