package handlers

import "github.com/gofiber/fiber/v2"

// Stable error kinds for the response envelope.
const (
	kindUnauthorized  = "unauthorized"
	kindForbidden     = "forbidden"
	kindBadRequest    = "bad_request"
	kindNotFound      = "not_found"
	kindConflict      = "conflict"
	kindUnprocessable = "unprocessable"
	kindUpstream      = "upstream"
	kindInternal      = "internal"
)

func respondError(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"kind":    kind,
		"message": message,
	})
}
