package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/pkg/utils"
)

// userRoleReader is the slice of the user repository the authorizer needs.
type userRoleReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthRequired validates the bearer token and stores the verified email in
// the request locals.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid authorization header format")
		}

		claims, err := utils.ValidateToken(parts[1], secret)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals("email", claims.Email)
		return c.Next()
	}
}

// RequireRole checks the persisted role of the verified user against the
// role the route demands. A mismatch ends the request with 403; the next
// handler is never invoked on the deny path.
func RequireRole(users userRoleReader, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals("email").(string)
		if !ok || email == "" {
			return unauthorized(c, "Invalid token")
		}

		user, err := users.GetByEmail(c.Context(), email)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   true,
				"kind":    "internal",
				"message": "Failed to verify role",
			})
		}
		if err != nil || user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   true,
				"kind":    "forbidden",
				"message": "Forbidden",
			})
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   true,
		"kind":    "unauthorized",
		"message": message,
	})
}
