package models

import (
	"time"
)

type ListTemplate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"default:''" json:"description"`
	ItemsJSON   string    `gorm:"default:'[]'" json:"items_json"`
	CreatedAt   time.Time `json:"created_at"`
}

// TemplateItem is one snapshot entry inside ItemsJSON. Due dates and
// completion are intentionally dropped when snapshotting.
type TemplateItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// TemplateInput is used for saving a template or instantiating one
type TemplateInput struct {
	Name string `json:"name"`
}
