package models

import (
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type ListItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ListID      uint      `gorm:"not null;index" json:"list_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"default:''" json:"description"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	DueDate     *string   `json:"due_date"`
	Priority    Priority  `gorm:"default:medium" json:"priority"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemInput is used for creating/updating items
type ItemInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Priority    Priority `json:"priority"`
}

// TagRef is the tag shape embedded in item responses
type TagRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ItemResponse is an item with its attached tags
type ItemResponse struct {
	ID          uint      `json:"id"`
	ListID      uint      `json:"list_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	DueDate     *string   `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []TagRef  `json:"tags"`
}

func (i *ListItem) ToResponse(tags []TagRef) ItemResponse {
	if tags == nil {
		tags = []TagRef{}
	}
	return ItemResponse{
		ID:          i.ID,
		ListID:      i.ListID,
		Title:       i.Title,
		Description: i.Description,
		SortOrder:   i.SortOrder,
		DueDate:     i.DueDate,
		Priority:    i.Priority,
		Completed:   i.Completed,
		CreatedAt:   i.CreatedAt,
		Tags:        tags,
	}
}
