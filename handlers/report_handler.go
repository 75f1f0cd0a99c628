package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/middleware"
	"github.com/prepwise/mock_interview/models"
	"github.com/prepwise/mock_interview/services"
)

// GenerateFeedbackReport exports the session's feedback as a PDF stored on
// Cloudinary.
func GenerateFeedbackReport(c *fiber.Ctx) error {
	mockID := c.Params("mockId")

	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Interview not found"})
	}

	var records []models.AnswerRecord
	if err := database.DB.
		Where("mock_id_ref = ?", mockID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load answers"})
	}

	answers := services.DedupAnswers(records)
	if len(answers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No answers recorded for this interview yet"})
	}

	report, err := services.GenerateFeedbackReport(&session, answers, middleware.CurrentEmail(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate feedback report"})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func ListFeedbackReports(c *fiber.Ctx) error {
	mockID := c.Params("mockId")
	var reports []models.FeedbackReport
	database.DB.
		Where("mock_id_ref = ?", mockID).
		Order("generated_at DESC").
		Find(&reports)
	return c.JSON(reports)
}
