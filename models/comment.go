package models

import (
	"time"
)

type ItemComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index" json:"item_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentInput is used for posting comments
type CommentInput struct {
	Content string `json:"content"`
}

// CommentResponse is a comment with the author's username resolved
type CommentResponse struct {
	ID        uint      `json:"id"`
	ItemID    uint      `json:"item_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}
