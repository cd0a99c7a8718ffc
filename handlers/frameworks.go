package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FrameworksCatalog returns the fixed framework catalog
func FrameworksCatalog(c *fiber.Ctx) error {
	return c.JSON(models.Frameworks)
}

// GetListFrameworks returns the framework keys attached to a list
func GetListFrameworks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	if !ownsList(uint(listID), userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	keys := []string{}
	database.DB.Model(&models.ListFramework{}).Where("list_id = ?", listID).Pluck("framework_key", &keys)

	return c.JSON(keys)
}

// AddListFramework attaches a catalog framework to a list. Attaching an
// already-attached framework is a no-op.
func AddListFramework(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	var input struct {
		FrameworkKey string `json:"framework_key"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if !models.ValidFramework(input.FrameworkKey) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid framework",
		})
	}

	if !ownsList(uint(listID), userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	attachment := models.ListFramework{ListID: uint(listID), FrameworkKey: input.FrameworkKey}
	result := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "list_id"}, {Name: "framework_key"}},
		DoNothing: true,
	}).Create(&attachment)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to attach framework",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

// RemoveListFramework detaches a framework and purges its per-item data
// within the list, so no orphaned payloads remain
func RemoveListFramework(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}
	key := c.Params("key")

	if !ownsList(uint(listID), userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ? AND framework_key = ?", listID, key).
			Delete(&models.ListFramework{}).Error; err != nil {
			return err
		}
		return tx.Where("framework_key = ? AND item_id IN (?)", key,
			tx.Model(&models.ListItem{}).Select("id").Where("list_id = ?", listID)).
			Delete(&models.ItemFrameworkData{}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to detach framework",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// frameworkDataEntry is one item's payload joined with display fields
type frameworkDataEntry struct {
	Data        json.RawMessage `json:"data"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
}

// GetFrameworkData returns item_id -> {data, title, description} for one
// framework across a list. Readable by owner and shared users.
func GetFrameworkData(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}
	key := c.Params("key")

	if !canViewList(uint(listID), userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var rows []struct {
		ItemID      uint
		DataJSON    string
		Title       string
		Description string
	}
	database.DB.Table("item_framework_data").
		Select("item_framework_data.item_id, item_framework_data.data_json, list_items.title, list_items.description").
		Joins("JOIN list_items ON list_items.id = item_framework_data.item_id").
		Where("item_framework_data.framework_key = ? AND list_items.list_id = ?", key, listID).
		Scan(&rows)

	result := make(map[string]frameworkDataEntry, len(rows))
	for _, r := range rows {
		data := json.RawMessage(r.DataJSON)
		if !json.Valid(data) {
			data = json.RawMessage("{}")
		}
		result[strconv.FormatUint(uint64(r.ItemID), 10)] = frameworkDataEntry{
			Data:        data,
			Title:       r.Title,
			Description: r.Description,
		}
	}

	return c.JSON(result)
}

// UpdateFrameworkData upserts one item's payload for a framework
func UpdateFrameworkData(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}
	key := c.Params("key")

	if _, ok := editableItem(uint(itemID), userID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var input struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := upsertFrameworkData(database.DB, uint(itemID), key, input.Data); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save framework data",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// BatchUpdateFrameworkData upserts payloads for many items at once,
// for saving a whole board or matrix view in one call
func BatchUpdateFrameworkData(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}
	key := c.Params("key")

	if !canEditList(uint(listID), userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var input struct {
		Items map[string]json.RawMessage `json:"items"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for idStr, payload := range input.Items {
			itemID, err := strconv.ParseUint(idStr, 10, 32)
			if err != nil {
				continue
			}
			// Only items actually in this list
			var count int64
			if err := tx.Model(&models.ListItem{}).
				Where("id = ? AND list_id = ?", itemID, listID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				continue
			}
			if err := upsertFrameworkData(tx, uint(itemID), key, payload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save framework data",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

func upsertFrameworkData(tx *gorm.DB, itemID uint, key string, payload json.RawMessage) error {
	if len(payload) == 0 || !json.Valid(payload) {
		payload = json.RawMessage("{}")
	}
	row := models.ItemFrameworkData{
		ItemID:       itemID,
		FrameworkKey: key,
		DataJSON:     string(payload),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "framework_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data_json", "updated_at"}),
	}).Create(&row).Error
}
