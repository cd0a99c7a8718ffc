package models

import (
	"time"
)

// FrameworkInfo is a catalog entry describing one productivity framework
type FrameworkInfo struct {
	Name        string `json:"name"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Frameworks is the fixed catalog of frameworks a list can adopt
var Frameworks = map[string]FrameworkInfo{
	"eisenhower": {
		Name:        "Eisenhower Matrix",
		Author:      "Dwight D. Eisenhower",
		Description: "Sort tasks by urgent vs important to stop treating everything like an emergency.",
		Icon:        "\U0001f4cb",
		Color:       "#6366f1",
	},
	"timeboxing": {
		Name:        "Timeboxing",
		Author:      "James Martin",
		Description: "Give tasks a fixed time limit so they can’t expand and swallow your whole week.",
		Icon:        "⏱️",
		Color:       "#f59e0b",
	},
	"impact_effort": {
		Name:        "Impact / Effort Matrix",
		Author:      "Lean / Agile practices",
		Description: "Rank tasks by impact vs effort to pick the work that actually moves things forward.",
		Icon:        "\U0001f4ca",
		Color:       "#10b981",
	},
	"kanban": {
		Name:        "Kanban Board",
		Author:      "Taiichi Ohno",
		Description: "Track tasks through stages so you can see what’s stuck.",
		Icon:        "\U0001f4cc",
		Color:       "#3b82f6",
	},
	"stop_doing": {
		Name:        "Stop Doing List",
		Author:      "Jim Collins",
		Description: "Win by removing commitments instead of stacking more on top.",
		Icon:        "\U0001f6ab",
		Color:       "#ef4444",
	},
	"pareto": {
		Name:        "80/20 Principle",
		Author:      "Vilfredo Pareto",
		Description: "Focus on the 20% of inputs that drive 80% of results.",
		Icon:        "\U0001f3af",
		Color:       "#8b5cf6",
	},
}

// ValidFramework reports whether key exists in the catalog.
func ValidFramework(key string) bool {
	_, ok := Frameworks[key]
	return ok
}

// ListFramework attaches a framework from the catalog to a list
type ListFramework struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListID       uint      `gorm:"not null;uniqueIndex:idx_list_framework" json:"list_id"`
	FrameworkKey string    `gorm:"not null;uniqueIndex:idx_list_framework" json:"framework_key"`
	AddedAt      time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// ItemFrameworkData holds the per-item payload for one framework (board
// column, matrix quadrant, etc.) as an opaque JSON document
type ItemFrameworkData struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ItemID       uint      `gorm:"not null;uniqueIndex:idx_item_framework" json:"item_id"`
	FrameworkKey string    `gorm:"not null;uniqueIndex:idx_item_framework" json:"framework_key"`
	DataJSON     string    `gorm:"default:'{}'" json:"data_json"`
	UpdatedAt    time.Time `json:"updated_at"`
}
