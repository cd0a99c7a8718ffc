package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListTemplates returns the current user's templates, newest first
func ListTemplates(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var templates []models.ListTemplate
	if result := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&templates); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch templates",
		})
	}

	return c.JSON(templates)
}

// SaveTemplate snapshots a list's items (title/description/priority only)
// under a user-chosen name. Due dates and completion don't belong in a
// reusable template.
func SaveTemplate(c *fiber.Ctx) error {
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

	var input models.TemplateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := sanitize(input.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Template name required",
		})
	}

	var items []models.ListItem
	database.DB.Where("list_id = ?", listID).Order("sort_order").Find(&items)

	snapshot := make([]models.TemplateItem, len(items))
	for i, item := range items {
		snapshot[i] = models.TemplateItem{
			Title:       item.Title,
			Description: item.Description,
			Priority:    item.Priority,
		}
	}
	itemsJSON, err := json.Marshal(snapshot)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save template",
		})
	}

	template := models.ListTemplate{
		UserID:      userID,
		Name:        name,
		Description: list.Description,
		ItemsJSON:   string(itemsJSON),
	}
	if result := database.DB.Create(&template); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save template",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": template.ID})
}

// CreateListFromTemplate materializes a template's snapshot into a new
// list owned by the caller. The list name may be overridden.
func CreateListFromTemplate(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	templateID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template ID",
		})
	}

	var template models.ListTemplate
	if result := database.DB.Where("id = ? AND user_id = ?", templateID, userID).First(&template); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	// The name override is optional, so an empty body is fine
	var input models.TemplateInput
	_ = c.BodyParser(&input)

	name := sanitize(input.Name)
	if name == "" {
		name = template.Name
	}

	var snapshot []models.TemplateItem
	if err := json.Unmarshal([]byte(template.ItemsJSON), &snapshot); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Corrupt template",
		})
	}

	list := models.List{
		UserID:      userID,
		Name:        name,
		Description: template.Description,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		for idx, entry := range snapshot {
			item := models.ListItem{
				ListID:      list.ID,
				Title:       entry.Title,
				Description: entry.Description,
				SortOrder:   idx,
				Priority:    normalizePriority(entry.Priority),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create list",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": list.ID})
}

// DeleteTemplate removes a template the caller owns
func DeleteTemplate(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	templateID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template ID",
		})
	}

	if result := database.DB.Where("id = ? AND user_id = ?", templateID, userID).Delete(&models.ListTemplate{}); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete template",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}
