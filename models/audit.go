package models

import (
	"time"
)

type AuditAction string

const (
	AuditActionRegister    AuditAction = "register"
	AuditActionLogin       AuditAction = "login"
	AuditActionLoginFailed AuditAction = "login_failed"
	AuditActionLogout      AuditAction = "logout"
	AuditActionShareCreate AuditAction = "share_create"
	AuditActionShareRemove AuditAction = "share_remove"
	AuditActionListImport  AuditAction = "list_import"
)

type AuditLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index" json:"user_id"`
	Username  string      `json:"username"`
	Action    AuditAction `gorm:"index" json:"action"`
	ListID    *uint       `gorm:"index" json:"list_id,omitempty"`
	Details   string      `json:"details,omitempty"`
	IPAddress string      `json:"ip_address"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}
