package handlers

import (
	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/models"
)

// ownsList reports whether the list exists and belongs to userID
func ownsList(listID, userID uint) bool {
	var count int64
	database.DB.Model(&models.List{}).Where("id = ? AND user_id = ?", listID, userID).Count(&count)
	return count > 0
}

// sharePermission returns the permission a share grants userID on the list
func sharePermission(listID, userID uint) (models.Permission, bool) {
	var share models.ListShare
	if result := database.DB.Where("list_id = ? AND shared_with_id = ?", listID, userID).First(&share); result.Error != nil {
		return "", false
	}
	return share.Permission, true
}

// canViewList allows the owner and any user the list was shared with
func canViewList(listID, userID uint) bool {
	if ownsList(listID, userID) {
		return true
	}
	_, ok := sharePermission(listID, userID)
	return ok
}

// canEditList allows the owner and edit-permission collaborators.
// Structural operations (rename, delete, frameworks, sharing, templates,
// export, reorder, bulk ops) stay owner-only and use ownsList directly.
func canEditList(listID, userID uint) bool {
	if ownsList(listID, userID) {
		return true
	}
	perm, ok := sharePermission(listID, userID)
	return ok && perm == models.PermissionEdit
}

// visibleItem loads an item when its parent list is readable by userID
func visibleItem(itemID, userID uint) (*models.ListItem, bool) {
	var item models.ListItem
	if result := database.DB.First(&item, itemID); result.Error != nil {
		return nil, false
	}
	if !canViewList(item.ListID, userID) {
		return nil, false
	}
	return &item, true
}

// editableItem loads an item when its parent list is writable by userID
func editableItem(itemID, userID uint) (*models.ListItem, bool) {
	var item models.ListItem
	if result := database.DB.First(&item, itemID); result.Error != nil {
		return nil, false
	}
	if !canEditList(item.ListID, userID) {
		return nil, false
	}
	return &item, true
}
