package handlers

import (
	"time"

	"github.com/olawale1rty/productivity-tracker/config"
	"github.com/olawale1rty/productivity-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers every API route on the app. Pulled out of main
// so tests can stand up the exact production routing.
func SetupRoutes(app *fiber.App) {
	cfg := config.GetConfig()

	app.Use(middleware.SecurityHeaders())

	app.Get("/health", HealthCheck)

	api := app.Group("/api")

	// Rate limiter for auth endpoints
	authLimiter := middleware.AuthRateLimiter(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowSecs)*time.Second)

	// Public routes (with rate limiting on auth)
	api.Post("/register", authLimiter, Register)
	api.Post("/login", authLimiter, Login)
	api.Post("/logout", Logout)
	api.Get("/me", Me)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired())

	protected.Get("/frameworks-catalog", FrameworksCatalog)
	protected.Get("/dashboard", Dashboard)
	protected.Get("/shared-lists", SharedLists)

	// List routes
	lists := protected.Group("/lists")
	lists.Get("/", ListLists)
	lists.Post("/", CreateList)
	lists.Post("/import", ImportList)
	lists.Put("/:id", UpdateList)
	lists.Delete("/:id", DeleteList)
	lists.Get("/:id/export", ExportList)

	// Item routes (reorder and bulk ops before the :itemID routes)
	lists.Get("/:id/items", ListItems)
	lists.Post("/:id/items", CreateItem)
	lists.Put("/:id/items/reorder", ReorderItems)
	lists.Post("/:id/items/bulk-delete", BulkDeleteItems)
	lists.Post("/:id/items/bulk-move", BulkMoveItems)
	lists.Put("/:id/items/:itemID", UpdateItem)
	lists.Delete("/:id/items/:itemID", DeleteItem)
	lists.Put("/:id/items/:itemID/toggle", ToggleItem)

	// Framework routes
	lists.Get("/:id/frameworks", GetListFrameworks)
	lists.Post("/:id/frameworks", AddListFramework)
	lists.Delete("/:id/frameworks/:key", RemoveListFramework)
	lists.Get("/:id/framework-data/:key", GetFrameworkData)
	lists.Put("/:id/framework-data/:key/batch", BatchUpdateFrameworkData)
	protected.Put("/items/:id/framework-data/:key", UpdateFrameworkData)

	// Sharing routes
	lists.Post("/:id/share", ShareList)
	lists.Get("/:id/share", GetListShares)
	lists.Delete("/:id/share/:shareID", RemoveShare)

	// Template routes
	lists.Post("/:id/save-template", SaveTemplate)
	templates := protected.Group("/templates")
	templates.Get("/", ListTemplates)
	templates.Post("/:id/create-list", CreateListFromTemplate)
	templates.Delete("/:id", DeleteTemplate)

	// Tag routes
	tags := protected.Group("/tags")
	tags.Get("/", ListTags)
	tags.Post("/", CreateTag)
	tags.Delete("/:id", DeleteTag)
	protected.Post("/items/:id/tags/:tagID", AddItemTag)
	protected.Delete("/items/:id/tags/:tagID", RemoveItemTag)

	// Comment routes
	protected.Get("/items/:id/comments", ListComments)
	protected.Post("/items/:id/comments", AddComment)
	protected.Delete("/comments/:id", DeleteComment)
}
