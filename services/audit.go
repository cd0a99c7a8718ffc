package services

import (
	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/models"
)

// LogAudit creates an audit log entry
func LogAudit(userID uint, username string, action models.AuditAction, listID *uint, details string, ipAddress string) {
	log := models.AuditLog{
		UserID:    userID,
		Username:  username,
		Action:    action,
		ListID:    listID,
		Details:   details,
		IPAddress: ipAddress,
	}

	// Fire and forget - don't block on audit logging
	go func() {
		database.DB.Create(&log)
	}()
}

// LogAuditSync creates an audit log entry synchronously
func LogAuditSync(userID uint, username string, action models.AuditAction, listID *uint, details string, ipAddress string) error {
	log := models.AuditLog{
		UserID:    userID,
		Username:  username,
		Action:    action,
		ListID:    listID,
		Details:   details,
		IPAddress: ipAddress,
	}

	return database.DB.Create(&log).Error
}
