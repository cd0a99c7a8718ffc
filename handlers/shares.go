package handlers

import (
	"strconv"
	"strings"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"
	"github.com/olawale1rty/productivity-tracker/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// ShareList grants another user view or edit access to a list the caller
// owns. Re-sharing the same pair updates the permission in place.
func ShareList(c *fiber.Ctx) error {
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

	var input models.ShareInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	permission := input.Permission
	if permission != models.PermissionView && permission != models.PermissionEdit {
		permission = models.PermissionView
	}

	username := strings.ToLower(sanitize(input.Username))
	var target models.User
	if result := database.DB.Where("username = ?", username).First(&target); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if target.ID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot share with yourself",
		})
	}

	share := models.ListShare{
		ListID:       uint(listID),
		OwnerID:      userID,
		SharedWithID: target.ID,
		Permission:   permission,
	}
	result := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "list_id"}, {Name: "shared_with_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission"}),
	}).Create(&share)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to share list",
		})
	}

	lid := uint(listID)
	services.LogAudit(userID, middleware.GetUsername(c), models.AuditActionShareCreate, &lid,
		"Shared with "+target.Username+" ("+string(permission)+")", c.IP())

	return c.JSON(fiber.Map{"ok": true})
}

// GetListShares returns the share grants the owner created for a list
func GetListShares(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	var shares []models.ListShare
	database.DB.Where("list_id = ? AND owner_id = ?", listID, userID).Find(&shares)

	responses := make([]models.ShareResponse, len(shares))
	for i, s := range shares {
		var grantee models.User
		database.DB.First(&grantee, s.SharedWithID)
		responses[i] = models.ShareResponse{
			ID:           s.ID,
			ListID:       s.ListID,
			OwnerID:      s.OwnerID,
			SharedWithID: s.SharedWithID,
			Permission:   s.Permission,
			CreatedAt:    s.CreatedAt,
			Username:     grantee.Username,
		}
	}

	return c.JSON(responses)
}

// RemoveShare revokes a share grant on a list the caller owns
func RemoveShare(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}
	shareID, err := strconv.ParseUint(c.Params("shareID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid share ID",
		})
	}

	result := database.DB.Where("id = ? AND list_id = ? AND owner_id = ?", shareID, listID, userID).
		Delete(&models.ListShare{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove share",
		})
	}
	if result.RowsAffected > 0 {
		lid := uint(listID)
		services.LogAudit(userID, middleware.GetUsername(c), models.AuditActionShareRemove, &lid, "", c.IP())
	}

	return c.JSON(fiber.Map{"ok": true})
}

// SharedLists returns the lists other users shared with the caller,
// tagged so the UI can tell them apart from owned lists
func SharedLists(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var shares []models.ListShare
	database.DB.Where("shared_with_id = ?", userID).Find(&shares)

	result := make([]models.SharedListResponse, 0, len(shares))
	for _, s := range shares {
		var list models.List
		if r := database.DB.First(&list, s.ListID); r.Error != nil {
			continue
		}
		var owner models.User
		database.DB.First(&owner, s.OwnerID)

		var itemCount int64
		database.DB.Model(&models.ListItem{}).Where("list_id = ?", list.ID).Count(&itemCount)

		result = append(result, models.SharedListResponse{
			ID:          list.ID,
			UserID:      list.UserID,
			Name:        list.Name,
			Description: list.Description,
			CreatedAt:   list.CreatedAt,
			Permission:  s.Permission,
			OwnerName:   owner.Username,
			ItemCount:   itemCount,
			Shared:      true,
		})
	}

	return c.JSON(result)
}
