package handlers

import (
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Samychowdhury01/melody-makers-academy-server/pkg/utils"
)

type AuthHandler struct {
	jwtSecret string
}

func NewAuthHandler(jwtSecret string) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret}
}

type tokenRequest struct {
	Email string `json:"email"`
}

// IssueToken signs a one-hour access token for the supplied user payload.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid request body")
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, kindBadRequest, "Invalid email format")
	}

	token, err := utils.GenerateToken(strings.ToLower(parsedEmail.Address), h.jwtSecret)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, kindInternal, "Failed to generate token")
	}

	return c.JSON(fiber.Map{"token": token})
}
