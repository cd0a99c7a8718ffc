package models

import (
	"time"
)

type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

type ListShare struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ListID       uint       `gorm:"not null;uniqueIndex:idx_list_share" json:"list_id"`
	OwnerID      uint       `gorm:"not null;index" json:"owner_id"`
	SharedWithID uint       `gorm:"not null;uniqueIndex:idx_list_share" json:"shared_with_id"`
	Permission   Permission `gorm:"default:view" json:"permission"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ShareInput is used for sharing a list with another user
type ShareInput struct {
	Username   string     `json:"username"`
	Permission Permission `json:"permission"`
}

// ShareResponse is a share grant with the grantee's username resolved
type ShareResponse struct {
	ID           uint       `json:"id"`
	ListID       uint       `json:"list_id"`
	OwnerID      uint       `json:"owner_id"`
	SharedWithID uint       `json:"shared_with_id"`
	Permission   Permission `json:"permission"`
	CreatedAt    time.Time  `json:"created_at"`
	Username     string     `json:"username"`
}

// SharedListResponse is a list as seen by a user it was shared with
type SharedListResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	Permission  Permission `json:"permission"`
	OwnerName   string     `json:"owner_name"`
	ItemCount   int64      `json:"item_count"`
	Shared      bool       `json:"shared"`
}
