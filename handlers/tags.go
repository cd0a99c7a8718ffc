package handlers

import (
	"errors"
	"strconv"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListTags returns the current user's tags, name-ordered
func ListTags(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var tags []models.Tag
	if result := database.DB.Where("user_id = ?", userID).Order("name").Find(&tags); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch tags",
		})
	}

	return c.JSON(tags)
}

// CreateTag creates a tag in the user's vocabulary; names are unique per user
func CreateTag(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input models.TagInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := sanitize(input.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Tag name is required",
		})
	}

	tag := models.Tag{
		UserID: userID,
		Name:   name,
		Color:  normalizeColor(input.Color),
	}

	if result := database.DB.Create(&tag); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Tag already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create tag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": tag.ID})
}

// DeleteTag removes a tag and all of its item associations
func DeleteTag(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	tagID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tag ID",
		})
	}

	var tag models.Tag
	if result := database.DB.Where("id = ? AND user_id = ?", tagID, userID).First(&tag); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.ItemTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete tag",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// AddItemTag attaches a tag to an item; both must belong to the caller.
// Attaching twice is a no-op.
func AddItemTag(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}
	tagID, err := strconv.ParseUint(c.Params("tagID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tag ID",
		})
	}

	item, ok := visibleItem(uint(itemID), userID)
	if !ok || !ownsList(item.ListID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var tag models.Tag
	if result := database.DB.Where("id = ? AND user_id = ?", tagID, userID).First(&tag); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tag not found",
		})
	}

	link := models.ItemTag{ItemID: uint(itemID), TagID: uint(tagID)}
	result := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to attach tag",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// RemoveItemTag detaches a tag from an item
func RemoveItemTag(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}
	tagID, err := strconv.ParseUint(c.Params("tagID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid tag ID",
		})
	}

	item, ok := visibleItem(uint(itemID), userID)
	if !ok || !ownsList(item.ListID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	if result := database.DB.Where("item_id = ? AND tag_id = ?", itemID, tagID).Delete(&models.ItemTag{}); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to detach tag",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}
