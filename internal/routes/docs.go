package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/config"
)

type docsEndpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Auth   string `json:"auth"`
}

// registerDocsRoutes exposes a machine-readable route listing in development
// builds only.
func registerDocsRoutes(app *fiber.App, cfg *config.Config) {
	if !cfg.DocsEnabled() {
		return
	}

	endpoints := []docsEndpoint{
		{Method: "POST", Path: "/jwt", Auth: "none"},
		{Method: "GET", Path: "/users", Auth: "admin"},
		{Method: "GET", Path: "/users/instructors", Auth: "none"},
		{Method: "POST", Path: "/users", Auth: "none"},
		{Method: "PATCH", Path: "/users/change-role", Auth: "admin"},
		{Method: "GET", Path: "/users/role/:email", Auth: "self"},
		{Method: "GET", Path: "/classes", Auth: "admin"},
		{Method: "GET", Path: "/approved-classes", Auth: "none"},
		{Method: "GET", Path: "/classes/:email", Auth: "instructor"},
		{Method: "POST", Path: "/classes", Auth: "instructor"},
		{Method: "PATCH", Path: "/classes/status", Auth: "admin"},
		{Method: "PATCH", Path: "/classes/feedback/:id", Auth: "admin"},
		{Method: "GET", Path: "/my-classes/:email", Auth: "student"},
		{Method: "POST", Path: "/my-classes", Auth: "student"},
		{Method: "DELETE", Path: "/my-classes/:id", Auth: "student"},
		{Method: "POST", Path: "/create-payment-intent", Auth: "authenticated"},
		{Method: "POST", Path: "/payments", Auth: "student"},
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":   "melody-makers-academy-server",
			"endpoints": endpoints,
		})
	})
}
