package handlers

import (
	"math"
	"time"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// recentItem is an item joined with its list's name for the dashboard feed
type recentItem struct {
	ID        uint            `json:"id"`
	ListID    uint            `json:"list_id"`
	Title     string          `json:"title"`
	Priority  models.Priority `json:"priority"`
	Completed bool            `json:"completed"`
	DueDate   *string         `json:"due_date"`
	CreatedAt time.Time       `json:"created_at"`
	ListName  string          `json:"list_name"`
}

// ownedItemsQuery scopes list_items to the lists userID owns
func ownedItemsQuery(userID uint) *gorm.DB {
	return database.DB.Model(&models.ListItem{}).
		Joins("JOIN lists ON lists.id = list_items.list_id").
		Where("lists.user_id = ?", userID)
}

// Dashboard aggregates read-only statistics across the caller's lists
func Dashboard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	db := database.DB

	var totalLists, totalItems, completedItems, overdueItems, highPriority int64
	db.Model(&models.List{}).Where("user_id = ?", userID).Count(&totalLists)
	ownedItemsQuery(userID).Count(&totalItems)
	ownedItemsQuery(userID).Where("list_items.completed = ?", true).Count(&completedItems)

	today := time.Now().Format("2006-01-02")
	ownedItemsQuery(userID).
		Where("list_items.due_date IS NOT NULL AND list_items.due_date < ? AND list_items.completed = ?", today, false).
		Count(&overdueItems)
	ownedItemsQuery(userID).
		Where("list_items.priority = ? AND list_items.completed = ?", models.PriorityHigh, false).
		Count(&highPriority)

	// Framework usage histogram
	var usageRows []struct {
		FrameworkKey string
		Cnt          int64
	}
	db.Model(&models.ListFramework{}).
		Select("framework_key, COUNT(*) AS cnt").
		Joins("JOIN lists ON lists.id = list_frameworks.list_id").
		Where("lists.user_id = ?", userID).
		Group("framework_key").
		Scan(&usageRows)
	frameworkUsage := make(map[string]int64, len(usageRows))
	for _, r := range usageRows {
		frameworkUsage[r.FrameworkKey] = r.Cnt
	}

	// Ten most recently created items, with their list names
	var items []models.ListItem
	ownedItemsQuery(userID).
		Order("list_items.created_at DESC, list_items.id DESC").
		Limit(10).
		Find(&items)
	recent := make([]recentItem, len(items))
	for i, item := range items {
		var list models.List
		db.First(&list, item.ListID)
		recent[i] = recentItem{
			ID:        item.ID,
			ListID:    item.ListID,
			Title:     item.Title,
			Priority:  item.Priority,
			Completed: item.Completed,
			DueDate:   item.DueDate,
			CreatedAt: item.CreatedAt,
			ListName:  list.Name,
		}
	}

	completionRate := 0.0
	if totalItems > 0 {
		completionRate = math.Round(float64(completedItems)/float64(totalItems)*1000) / 10
	}

	return c.JSON(fiber.Map{
		"total_lists":     totalLists,
		"total_items":     totalItems,
		"completed_items": completedItems,
		"overdue_items":   overdueItems,
		"high_priority":   highPriority,
		"framework_usage": frameworkUsage,
		"recent_items":    recent,
		"completion_rate": completionRate,
	})
}
