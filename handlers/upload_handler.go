package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	config "github.com/prepwise/mock_interview/configs"
	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/middleware"
	"github.com/prepwise/mock_interview/models"
)

const recordingsFolder = "mock_interview_recordings"

// GenerateUploadSignature signs Cloudinary params so the browser can upload a
// recorded answer clip directly, without the media passing through us.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse Cloudinary URL"})
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: recordingsFolder,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare signature params"})
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    recordingsFolder,
	})
}

type CreateRecordingRequest struct {
	Question  string `json:"question" validate:"required"`
	PublicID  string `json:"public_id" validate:"required"`
	SecureURL string `json:"secure_url" validate:"required,url"`
}

// CreateRecording links an uploaded clip to its interview and question.
func CreateRecording(c *fiber.Ctx) error {
	mockID := c.Params("mockId")

	var req CreateRecordingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Interview not found"})
	}

	recording := models.AnswerRecording{
		MockIDRef: mockID,
		Question:  req.Question,
		PublicID:  req.PublicID,
		SecureURL: req.SecureURL,
		UserEmail: middleware.CurrentEmail(c),
	}
	if err := database.DB.Create(&recording).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save recording"})
	}

	return c.Status(fiber.StatusCreated).JSON(recording)
}
