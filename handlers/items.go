package handlers

import (
	"strconv"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// maxBatchSize caps reorder and bulk operation payloads
const maxBatchSize = 500

// ListItems returns a list's items in sort order, each with its tags.
// Readable by the owner and by users the list was shared with.
func ListItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	if !canViewList(uint(listID), userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var items []models.ListItem
	if result := database.DB.Where("list_id = ?", listID).Order("sort_order, id").Find(&items); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch items",
		})
	}

	responses := make([]models.ItemResponse, len(items))
	for i, item := range items {
		var tags []models.TagRef
		database.DB.Table("tags").
			Select("tags.id, tags.name, tags.color").
			Joins("JOIN item_tags ON item_tags.tag_id = tags.id").
			Where("item_tags.item_id = ?", item.ID).
			Scan(&tags)
		responses[i] = item.ToResponse(tags)
	}

	return c.JSON(responses)
}

// CreateItem appends an item to a list at the next sort position
func CreateItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	if !canEditList(uint(listID), userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var input models.ItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	title := sanitize(input.Title)
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	// Next position is max+1; concurrent creates may race but ties are
	// broken by id on read
	var next int
	database.DB.Model(&models.ListItem{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(sort_order), -1) + 1").
		Scan(&next)

	item := models.ListItem{
		ListID:      uint(listID),
		Title:       title,
		Description: sanitizeText(input.Description),
		SortOrder:   next,
		DueDate:     validDate(input.DueDate),
		Priority:    normalizePriority(input.Priority),
	}

	if result := database.DB.Create(&item); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": item.ID})
}

// UpdateItem replaces an item's title, description, due date and priority
func UpdateItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}
	itemID, err := strconv.ParseUint(c.Params("itemID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	item, ok := editableItem(uint(itemID), userID)
	if !ok || item.ListID != uint(listID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var input models.ItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	title := sanitize(input.Title)
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	item.Title = title
	item.Description = sanitizeText(input.Description)
	item.DueDate = validDate(input.DueDate)
	item.Priority = normalizePriority(input.Priority)

	if result := database.DB.Save(item); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update item",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// DeleteItem removes a single item and its child rows
func DeleteItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}
	itemID, err := strconv.ParseUint(c.Params("itemID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	item, ok := editableItem(uint(itemID), userID)
	if !ok || item.ListID != uint(listID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteItems(tx, []uint{item.ID})
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete item",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// ToggleItem flips the completed flag and returns the new value
func ToggleItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}
	itemID, err := strconv.ParseUint(c.Params("itemID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	item, ok := editableItem(uint(itemID), userID)
	if !ok || item.ListID != uint(listID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	newValue := !item.Completed
	if result := database.DB.Model(item).Update("completed", newValue); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update item",
		})
	}

	return c.JSON(fiber.Map{"ok": true, "completed": newValue})
}

// ReorderItems rewrites sort positions to match the submitted id order.
// Ids that aren't numbers or don't belong to the list are skipped.
func ReorderItems(c *fiber.Ctx) error {
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

	var input struct {
		Order []any `json:"order"`
	}
	if err := c.BodyParser(&input); err != nil || len(input.Order) > maxBatchSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for idx, raw := range input.Order {
			id, ok := raw.(float64)
			if !ok || id < 0 {
				continue
			}
			if err := tx.Model(&models.ListItem{}).
				Where("id = ? AND list_id = ?", uint(id), listID).
				Update("sort_order", idx).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reorder items",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// BulkDeleteItems removes a capped set of items from a list in one transaction
func BulkDeleteItems(c *fiber.Ctx) error {
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

	ids, ok := parseIDBatch(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ids",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Restrict to items actually in this list before cascading
		var itemIDs []uint
		if err := tx.Model(&models.ListItem{}).
			Where("id IN ? AND list_id = ?", ids, listID).
			Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		return deleteItems(tx, itemIDs)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete items",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// BulkMoveItems reassigns a capped set of items to another list the
// caller owns
func BulkMoveItems(c *fiber.Ctx) error {
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

	var input struct {
		IDs          []any `json:"ids"`
		TargetListID uint  `json:"target_list_id"`
	}
	if err := c.BodyParser(&input); err != nil || len(input.IDs) > maxBatchSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ids",
		})
	}

	if !ownsList(input.TargetListID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Target list not found",
		})
	}

	ids := numericIDs(input.IDs)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.ListItem{}).
			Where("id IN ? AND list_id = ?", ids, listID).
			Update("list_id", input.TargetListID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to move items",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// parseIDBatch reads an {"ids": [...]} body, dropping non-numeric entries
func parseIDBatch(c *fiber.Ctx) ([]uint, bool) {
	var input struct {
		IDs []any `json:"ids"`
	}
	if err := c.BodyParser(&input); err != nil || len(input.IDs) > maxBatchSize {
		return nil, false
	}
	return numericIDs(input.IDs), true
}

func numericIDs(raw []any) []uint {
	ids := make([]uint, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(float64); ok && id >= 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}
