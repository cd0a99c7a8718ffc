package handlers

import (
	"github.com/olawale1rty/productivity-tracker/config"
	"github.com/olawale1rty/productivity-tracker/database"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck is the liveness probe; it verifies the store is reachable
func HealthCheck(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	env := "development"
	if config.GetConfig().Production {
		env = "production"
	}
	return c.JSON(fiber.Map{"status": "healthy", "env": env})
}
