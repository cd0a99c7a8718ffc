package models

const DefaultTagColor = "#6366f1"

type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_user_tag" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_user_tag" json:"name"`
	Color  string `gorm:"default:#6366f1" json:"color"`
}

// TagInput is used for creating tags
type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ItemTag links an item to a tag; the composite key blocks duplicates
type ItemTag struct {
	ItemID uint `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
}
