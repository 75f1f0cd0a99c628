package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/middleware"
	"github.com/prepwise/mock_interview/models"
	"github.com/prepwise/mock_interview/services"
)

type SubmitAnswerRequest struct {
	QuestionIndex *int   `json:"question_index" validate:"required,min=0"`
	Transcript    string `json:"transcript" validate:"required"`
}

// SubmitAnswer scores a finished transcript for one question and replaces any
// previous answer. Clients that run their own speech capture use this instead
// of the websocket channel.
func SubmitAnswer(c *fiber.Ctx) error {
	mockID := c.Params("mockId")

	var req SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transcript := strings.TrimSpace(req.Transcript)
	if len(transcript) <= services.MinTranscriptLength {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Transcript too short to score"})
	}

	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Interview not found"})
	}

	questions, err := services.DecodeStoredQuestionSet(session.QuestionSet)
	if err != nil {
		log.Printf("Error decoding question set for interview %s: %v", mockID, err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Stored question set is not decodable"})
	}
	if *req.QuestionIndex >= len(questions) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Question index out of range"})
	}

	answerService := services.NewAnswerService(database.DB, services.NewAIServiceFromEnv())
	record, err := answerService.ScoreAndSave(&session, questions[*req.QuestionIndex], transcript, middleware.CurrentEmail(c))
	if err != nil {
		log.Printf("Failed to save answer for interview %s: %v", mockID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Something went wrong while saving the answer"})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

type feedbackEntry struct {
	Question   string   `json:"question"`
	UserAns    string   `json:"user_ans"`
	CorrectAns string   `json:"correct_ans,omitempty"`
	Feedback   string   `json:"feedback,omitempty"`
	Rating     *float64 `json:"rating"`
	Rated      bool     `json:"rated"`
}

// GetFeedback returns the per-question transcripts with AI commentary plus
// the overall rating. Stale duplicates from lost replace races are hidden by
// keeping only the newest row per question.
func GetFeedback(c *fiber.Ctx) error {
	mockID := c.Params("mockId")

	var records []models.AnswerRecord
	if err := database.DB.
		Where("mock_id_ref = ?", mockID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load feedback"})
	}

	answers := services.DedupAnswers(records)
	avg := services.AverageRating(answers)

	entries := make([]feedbackEntry, len(answers))
	for i, a := range answers {
		entries[i] = feedbackEntry{
			Question:   a.Question,
			UserAns:    a.UserAns,
			CorrectAns: a.CorrectAns,
			Feedback:   a.Feedback,
			Rating:     a.Rating,
			Rated:      a.Rating != nil,
		}
	}

	return c.JSON(fiber.Map{
		"mock_id":        mockID,
		"answers":        entries,
		"average_rating": avg,
	})
}
