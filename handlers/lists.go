package handlers

import (
	"strconv"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListLists returns the current user's lists with item counts and
// attached framework keys
func ListLists(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var lists []models.List
	if result := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&lists); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch lists",
		})
	}

	summaries := make([]models.ListSummary, len(lists))
	for i, l := range lists {
		var itemCount, completedCount int64
		database.DB.Model(&models.ListItem{}).Where("list_id = ?", l.ID).Count(&itemCount)
		database.DB.Model(&models.ListItem{}).Where("list_id = ? AND completed = ?", l.ID, true).Count(&completedCount)

		frameworks := []string{}
		database.DB.Model(&models.ListFramework{}).Where("list_id = ?", l.ID).Pluck("framework_key", &frameworks)

		summaries[i] = models.ListSummary{
			ID:             l.ID,
			UserID:         l.UserID,
			Name:           l.Name,
			Description:    l.Description,
			CreatedAt:      l.CreatedAt,
			ItemCount:      itemCount,
			CompletedCount: completedCount,
			Frameworks:     frameworks,
			Shared:         false,
		}
	}

	return c.JSON(summaries)
}

// CreateList creates a new list for the current user
func CreateList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input models.ListInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := sanitize(input.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "List name is required",
		})
	}

	list := models.List{
		UserID:      userID,
		Name:        name,
		Description: sanitizeText(input.Description),
	}

	if result := database.DB.Create(&list); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create list",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": list.ID})
}

// UpdateList updates a list's name and description
func UpdateList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	var list models.List
	if result := database.DB.Where("id = ? AND user_id = ?", listID, userID).First(&list); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var input models.ListInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := sanitize(input.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "List name is required",
		})
	}

	list.Name = name
	list.Description = sanitizeText(input.Description)

	if result := database.DB.Save(&list); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update list",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// DeleteList deletes a list and everything hanging off it
func DeleteList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	var list models.List
	if result := database.DB.Where("id = ? AND user_id = ?", listID, userID).First(&list); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteListItems(tx, list.ID); err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.ListFramework{}).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.ListShare{}).Error; err != nil {
			return err
		}
		return tx.Delete(&list).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete list",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// deleteListItems removes all of a list's items plus their framework data,
// tag links and comments
func deleteListItems(tx *gorm.DB, listID uint) error {
	var itemIDs []uint
	if err := tx.Model(&models.ListItem{}).Where("list_id = ?", listID).Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) == 0 {
		return nil
	}
	return deleteItems(tx, itemIDs)
}

// deleteItems removes the given items and their child rows
func deleteItems(tx *gorm.DB, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.ItemFrameworkData{}).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.ItemTag{}).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.ItemComment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", itemIDs).Delete(&models.ListItem{}).Error
}
