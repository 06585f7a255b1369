package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/config"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/handlers"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/middleware"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/repository"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)

	classService := services.NewClassService(classRepo)
	enrollmentService := services.NewEnrollmentService(db)
	paymentService := services.NewStripePaymentService(cfg.PaymentAPIURL, cfg.PaymentSecretKey)

	authHandler := handlers.NewAuthHandler(cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userRepo)
	classHandler := handlers.NewClassHandler(classRepo, classService)
	selectionHandler := handlers.NewSelectionHandler(selectionRepo, enrollmentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, enrollmentService)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(userRepo, models.RoleAdmin)
	instructorOnly := middleware.RequireRole(userRepo, models.RoleInstructor)
	studentOnly := middleware.RequireRole(userRepo, models.RoleStudent)

	app.Post("/jwt", authHandler.IssueToken)

	app.Get("/users", authRequired, adminOnly, userHandler.ListUsers)
	app.Get("/users/instructors", userHandler.ListInstructors)
	app.Post("/users", userHandler.CreateUser)
	app.Patch("/users/change-role", authRequired, adminOnly, userHandler.ChangeRole)
	app.Get("/users/role/:email", authRequired, userHandler.GetRole)

	app.Get("/classes", authRequired, adminOnly, classHandler.ListClasses)
	app.Get("/approved-classes", classHandler.ListApprovedClasses)
	app.Get("/classes/:email", authRequired, instructorOnly, classHandler.ListInstructorClasses)
	app.Post("/classes", authRequired, instructorOnly, classHandler.CreateClass)
	app.Patch("/classes/status", authRequired, adminOnly, classHandler.UpdateClassStatus)
	app.Patch("/classes/feedback/:id", authRequired, adminOnly, classHandler.UpdateClassFeedback)

	app.Get("/my-classes/:email", authRequired, studentOnly, selectionHandler.ListSelections)
	app.Post("/my-classes", authRequired, studentOnly, selectionHandler.CreateSelection)
	app.Delete("/my-classes/:id", authRequired, studentOnly, selectionHandler.DeleteSelection)

	app.Post("/create-payment-intent", authRequired, paymentHandler.CreateIntent)
	app.Post("/payments", authRequired, studentOnly, paymentHandler.FinalizePayment)

	registerDocsRoutes(app, cfg)
	return nil
}
