package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/mock_interview/handlers"
	"github.com/prepwise/mock_interview/middleware"
)

func InterviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	interviews := api.Group("/interviews", middleware.Protected())
	interviews.Post("", handlers.CreateInterview)
	interviews.Get("", handlers.ListInterviews)
	interviews.Get("/:mockId", handlers.GetInterview)
	interviews.Get("/:mockId/questions", handlers.GetInterviewQuestions)
	interviews.Get("/:mockId/questions/:index/speech", handlers.SpeakQuestion)
	interviews.Post("/:mockId/end", handlers.EndInterview)

	interviews.Post("/:mockId/answers", handlers.SubmitAnswer)
	interviews.Get("/:mockId/feedback", handlers.GetFeedback)
	interviews.Post("/:mockId/feedback/report", handlers.GenerateFeedbackReport)
	interviews.Get("/:mockId/feedback/reports", handlers.ListFeedbackReports)

	interviews.Post("/:mockId/recordings", handlers.CreateRecording)

	// The capture socket authenticates with its first frame, not the JWT
	// middleware: browsers cannot set headers on websocket upgrades.
	api.Use("/capture/:mockId", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/capture/:mockId", websocket.New(handlers.ServeCapture))
}
