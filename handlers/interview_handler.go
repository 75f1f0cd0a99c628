package handlers

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	config "github.com/prepwise/mock_interview/configs"
	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/middleware"
	"github.com/prepwise/mock_interview/models"
	"github.com/prepwise/mock_interview/notifications"
	"github.com/prepwise/mock_interview/services"
	"github.com/prepwise/mock_interview/speech"
	"github.com/prepwise/mock_interview/utils"
	"github.com/prepwise/mock_interview/websocket"
)

const defaultQuestionCount = 5

type CreateInterviewRequest struct {
	JobPosition     string `json:"job_position" validate:"required"`
	JobDescription  string `json:"job_description" validate:"required"`
	YearsExperience string `json:"years_experience" validate:"required"`
}

func questionCount() int {
	if n, err := strconv.Atoi(config.Config("INTERVIEW_QUESTION_COUNT")); err == nil && n > 0 {
		return n
	}
	return defaultQuestionCount
}

// CreateInterview generates a question set for the described role and
// persists it as a new session. A malformed AI response aborts the whole
// operation; no session row is written.
func CreateInterview(c *fiber.Ctx) error {
	var req CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ai := services.NewAIServiceFromEnv()
	reply, err := ai.Chat(
		services.GenerationSystemPrompt,
		services.GenerationPrompt(req.JobPosition, req.JobDescription, req.YearsExperience, questionCount()),
	)
	if err != nil {
		log.Printf("Error generating mock interview: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to generate interview questions"})
	}

	questions, err := services.ParseQuestionSet(reply)
	if err != nil {
		log.Printf("Error parsing generated questions: %v", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "AI returned an invalid question set"})
	}

	questionJSON, err := json.Marshal(questions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to encode question set"})
	}

	session := models.InterviewSession{
		MockID:          utils.NewMockID(),
		JobPosition:     req.JobPosition,
		JobDescription:  req.JobDescription,
		YearsExperience: req.YearsExperience,
		QuestionSet:     string(questionJSON),
		CreatedBy:       middleware.CurrentEmail(c),
		CreatedOn:       utils.CreatedOnStamp(),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create interview"})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func ListInterviews(c *fiber.Ctx) error {
	var sessions []models.InterviewSession
	database.DB.
		Where("created_by = ?", middleware.CurrentEmail(c)).
		Order("created_at DESC").
		Find(&sessions)
	return c.JSON(sessions)
}

func GetInterview(c *fiber.Ctx) error {
	mockID := c.Params("mockId")
	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Interview not found"})
	}
	return c.JSON(session)
}

// GetInterviewQuestions decodes the stored question set, tolerating the
// legacy wrapped encodings, and returns the canonical ordered sequence.
func GetInterviewQuestions(c *fiber.Ctx) error {
	mockID := c.Params("mockId")
	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Interview not found"})
	}

	questions, err := services.DecodeStoredQuestionSet(session.QuestionSet)
	if err != nil {
		log.Printf("Error decoding question set for interview %s: %v", mockID, err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Stored question set is not decodable"})
	}

	return c.JSON(fiber.Map{
		"mock_id":   session.MockID,
		"questions": questions,
	})
}

// SpeakQuestion reads one question aloud through the TTS provider.
func SpeakQuestion(c *fiber.Ctx) error {
	mockID := c.Params("mockId")
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question index"})
	}

	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Interview not found"})
	}

	questions, err := services.DecodeStoredQuestionSet(session.QuestionSet)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Stored question set is not decodable"})
	}
	if index >= len(questions) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	tts := speech.NewOpenAITTS(
		config.Config("AI_API_KEY"),
		config.Config("AI_BASE_URL"),
		config.Config("TTS_MODEL"),
		config.Config("TTS_VOICE"),
	)
	audio, err := tts.Synthesize(c.Context(), questions[index].Question)
	if err != nil {
		log.Printf("Error synthesizing question audio: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to synthesize speech"})
	}

	c.Set("Content-Type", "audio/mpeg")
	return c.Send(audio)
}

// EndInterview closes the live capture session, if any, and mails the
// candidate a feedback summary.
func EndInterview(c *fiber.Ctx) error {
	mockID := c.Params("mockId")
	email := middleware.CurrentEmail(c)

	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Interview not found"})
	}

	websocket.RemoveCapture(mockID, email)

	var records []models.AnswerRecord
	if err := database.DB.
		Where("mock_id_ref = ?", mockID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		log.Printf("Error loading answers for interview %s: %v", mockID, err)
	}
	answers := services.DedupAnswers(records)
	avg := services.AverageRating(answers)

	go notifications.SendFeedbackSummary(email, session.JobPosition, len(answers), avg)

	return c.JSON(fiber.Map{
		"message":        "Interview ended",
		"answered":       len(answers),
		"average_rating": avg,
	})
}
