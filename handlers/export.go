package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"
	"github.com/olawale1rty/productivity-tracker/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxImportItems caps how many items a single import may carry
const maxImportItems = 1000

// listExport is the JSON export document
type listExport struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Frameworks  []string          `json:"frameworks"`
	Items       []models.ListItem `json:"items"`
}

// ExportList serializes a list as indented JSON or as CSV. The CSV form
// carries item fields only; frameworks and per-item data don't fit a
// flat file.
func ExportList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	var list models.List
	if result := database.DB.Where("id = ? AND user_id = ?", listID, userID).First(&list); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var items []models.ListItem
	database.DB.Where("list_id = ?", listID).Order("sort_order").Find(&items)

	frameworks := []string{}
	database.DB.Model(&models.ListFramework{}).Where("list_id = ?", listID).Pluck("framework_key", &frameworks)

	format := c.Query("format", "json")
	if format != "json" && format != "csv" {
		format = "json"
	}

	safeName := filenameRegex.ReplaceAllString(list.Name, "")
	if len(safeName) > 50 {
		safeName = safeName[:50]
	}
	if safeName == "" {
		safeName = "export"
	}

	if format == "csv" {
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		writer.Write([]string{"title", "description", "priority", "due_date", "completed"})
		for _, item := range items {
			dueDate := ""
			if item.DueDate != nil {
				dueDate = *item.DueDate
			}
			completed := "0"
			if item.Completed {
				completed = "1"
			}
			writer.Write([]string{item.Title, item.Description, string(item.Priority), dueDate, completed})
		}
		writer.Flush()

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, "attachment;filename="+safeName+".csv")
		return c.Send(buf.Bytes())
	}

	doc := listExport{
		Name:        list.Name,
		Description: list.Description,
		Frameworks:  frameworks,
		Items:       items,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export list",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, "attachment;filename="+safeName+".json")
	return c.Send(data)
}

// importItem is one incoming item in an import document
type importItem struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	DueDate     string          `json:"due_date"`
	Completed   bool            `json:"completed"`
}

// importInput is the import document
type importInput struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Items       []importItem `json:"items"`
	Frameworks  []string     `json:"frameworks"`
}

// ImportList creates a new list from an exported document. Items without
// a title are skipped, unknown framework keys are ignored.
func ImportList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input importInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(input.Items) > maxImportItems {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Too many items",
		})
	}

	name := sanitize(input.Name)
	if name == "" {
		name = "Imported List"
	}

	list := models.List{
		UserID:      userID,
		Name:        name,
		Description: sanitizeText(input.Description),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		for idx, item := range input.Items {
			title := sanitize(item.Title)
			if title == "" {
				continue
			}
			row := models.ListItem{
				ListID:      list.ID,
				Title:       title,
				Description: sanitizeText(item.Description),
				SortOrder:   idx,
				DueDate:     validDate(item.DueDate),
				Priority:    normalizePriority(item.Priority),
				Completed:   item.Completed,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, key := range input.Frameworks {
			if !models.ValidFramework(key) {
				continue
			}
			// Duplicate keys in the input collapse to one attachment
			attachment := models.ListFramework{ListID: list.ID, FrameworkKey: key}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "list_id"}, {Name: "framework_key"}},
				DoNothing: true,
			}).Create(&attachment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to import list",
		})
	}

	lid := list.ID
	services.LogAudit(userID, middleware.GetUsername(c), models.AuditActionListImport, &lid,
		"Imported "+strconv.Itoa(len(input.Items))+" items", c.IP())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": list.ID})
}
