package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/mock_interview/handlers"
	"github.com/prepwise/mock_interview/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/interviews", handlers.AdminListInterviews)
	admin.Get("/users", handlers.AdminListUsers)
	admin.Patch("/users/:userId/status", handlers.AdminSetUserStatus)
}
