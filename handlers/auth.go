package handlers

import (
	"strings"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"
	"github.com/olawale1rty/productivity-tracker/models"
	"github.com/olawale1rty/productivity-tracker/services"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a user and begins an authenticated session
func Register(c *fiber.Ctx) error {
	var input models.CredentialsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	username := strings.ToLower(sanitize(input.Username))
	if !usernameRegex.MatchString(username) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username must be 3-30 chars (letters, numbers, underscore)",
		})
	}
	if len(input.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 6 characters",
		})
	}
	if len(input.Password) > 128 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password too long",
		})
	}

	// Check if username exists
	var existing models.User
	if result := database.DB.Where("username = ?", username).First(&existing); result.Error == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already taken",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if result := database.DB.Create(&user); result.Error != nil {
		// The unique index wins a registration race the pre-check missed
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already taken",
		})
	}

	token, err := middleware.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}
	middleware.SetSessionCookie(c, token)

	services.LogAudit(user.ID, user.Username, models.AuditActionRegister, nil, "", c.IP())

	return c.JSON(fiber.Map{"ok": true, "username": user.Username})
}

// Login validates credentials and issues a fresh session token
func Login(c *fiber.Ctx) error {
	var input models.CredentialsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	username := strings.ToLower(sanitize(input.Username))

	var user models.User
	if result := database.DB.Where("username = ?", username).First(&user); result.Error != nil {
		services.LogAudit(0, username, models.AuditActionLoginFailed, nil, "", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		services.LogAudit(user.ID, username, models.AuditActionLoginFailed, nil, "", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// A brand-new token replaces whatever cookie the client arrived with,
	// so a pre-login session can't be fixated
	token, err := middleware.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}
	middleware.SetSessionCookie(c, token)

	services.LogAudit(user.ID, user.Username, models.AuditActionLogin, nil, "", c.IP())

	return c.JSON(fiber.Map{"ok": true, "username": user.Username})
}

// Logout ends the session
func Logout(c *fiber.Ctx) error {
	if claims, err := middleware.ParseSession(c); err == nil {
		services.LogAudit(claims.UserID, claims.Username, models.AuditActionLogout, nil, "", c.IP())
	}
	middleware.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Me reports the current identity, or anonymous
func Me(c *fiber.Ctx) error {
	claims, err := middleware.ParseSession(c)
	if err != nil {
		return c.JSON(fiber.Map{"logged_in": false})
	}
	return c.JSON(fiber.Map{"logged_in": true, "username": claims.Username})
}
