package handlers

import (
	"strconv"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// ListComments returns an item's comments oldest-first with author names
func ListComments(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	if _, ok := visibleItem(uint(itemID), userID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var comments []models.ItemComment
	database.DB.Where("item_id = ?", itemID).Order("created_at ASC, id ASC").Find(&comments)

	responses := make([]models.CommentResponse, len(comments))
	for i, cm := range comments {
		var author models.User
		database.DB.First(&author, cm.UserID)
		responses[i] = models.CommentResponse{
			ID:        cm.ID,
			ItemID:    cm.ItemID,
			UserID:    cm.UserID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
			Username:  author.Username,
		}
	}

	return c.JSON(responses)
}

// AddComment appends a comment to an item
func AddComment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	if _, ok := visibleItem(uint(itemID), userID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var input models.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	content := sanitizeText(input.Content)
	if content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment cannot be empty",
		})
	}

	comment := models.ItemComment{
		ItemID:  uint(itemID),
		UserID:  userID,
		Content: content,
	}
	if result := database.DB.Create(&comment); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": comment.ID})
}

// DeleteComment removes a comment; only its author may do so
func DeleteComment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	commentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment ID",
		})
	}

	if result := database.DB.Where("id = ? AND user_id = ?", commentID, userID).Delete(&models.ItemComment{}); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete comment",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}
