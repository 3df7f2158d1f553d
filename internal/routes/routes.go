package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/recyclehub/internal/config"
	"github.com/example/recyclehub/internal/handlers"
	"github.com/example/recyclehub/internal/middleware"
	"github.com/example/recyclehub/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	authHandler := handlers.NewAuthHandler(db, cfg)
	itemHandler := handlers.NewItemHandler(db, telegramService)
	middlemanHandler := handlers.NewMiddlemanHandler(db, telegramService)
	companyHandler := handlers.NewCompanyHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)

	api := app.Group("/api")

	// User and middleman auth
	api.Post("/signup", authHandler.Signup)
	api.Post("/login", authHandler.Login)

	// Client pickup requests
	user := api.Group("/user")
	user.Post("/add-item", itemHandler.AddItem)
	user.Get("/items/:userId", itemHandler.ListUserItems)

	// Partner job board
	middleman := api.Group("/middleman")
	middleman.Get("/available-items", middlemanHandler.AvailableItems)
	middleman.Post("/assign-item", middlemanHandler.AssignItem)
	middleman.Get("/items/:middlemanId", middlemanHandler.ListMiddlemanItems)

	// Recycling companies
	company := api.Group("/company")
	company.Post("/register", companyHandler.Register)
	company.Post("/login", companyHandler.Login)
	company.Post("/verify-item", companyHandler.VerifyItem)
	company.Get("/assigned-items", companyHandler.ListAssignedItems)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/me", profileHandler.Me)
}
