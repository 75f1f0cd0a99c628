package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/models"
)

// AdminListInterviews returns every interview session regardless of creator.
func AdminListInterviews(c *fiber.Ctx) error {
	var sessions []models.InterviewSession
	if err := database.DB.Order("created_at DESC").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load interviews"})
	}
	return c.JSON(sessions)
}

func AdminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load users"})
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = UserResponse{
			ID:        u.ID.String(),
			FullName:  u.FullName,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}
	return c.JSON(responses)
}

// AdminSetUserStatus activates or deactivates an account. Deactivated users
// cannot log in.
func AdminSetUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", req.IsActive)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "User status updated", "is_active": req.IsActive})
}
