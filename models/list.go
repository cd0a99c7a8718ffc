package models

import (
	"time"
)

type List struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"default:''" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListInput is used for creating/updating lists
type ListInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListSummary is a list decorated with item counts and attached frameworks
type ListSummary struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	ItemCount      int64     `json:"item_count"`
	CompletedCount int64     `json:"completed_count"`
	Frameworks     []string  `json:"frameworks"`
	Shared         bool      `json:"shared"`
}
