package middleware

import (
	"time"

	"github.com/olawale1rty/productivity-tracker/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the cookie carrying the signed session token
const SessionCookie = "session"

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ParseSession extracts and validates the session claims from the cookie.
// Returns an error when no valid session is present.
func ParseSession(c *fiber.Ctx) (*Claims, error) {
	cfg := config.GetConfig()

	cookie := c.Cookies(SessionCookie)
	if cookie == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	token, err := jwt.ParseWithClaims(cookie, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	return claims, nil
}

// AuthRequired validates the session cookie and stores the identity in Locals
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := ParseSession(c)
		if err != nil {
			e := err.(*fiber.Error)
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)

		return c.Next()
	}
}

// GenerateSessionToken signs a fresh token for the user. Called on every
// register/login so a pre-auth token never survives authentication.
func GenerateSessionToken(userID uint, username string) (string, error) {
	cfg := config.GetConfig()
	lifetime := time.Duration(cfg.SessionDurationHours) * time.Hour

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// SetSessionCookie attaches the session token to the response
func SetSessionCookie(c *fiber.Ctx, token string) {
	cfg := config.GetConfig()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(cfg.SessionDurationHours) * time.Hour),
		HTTPOnly: true,
		Secure:   cfg.Production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *fiber.Ctx) {
	cfg := config.GetConfig()
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.Production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func GetUserID(c *fiber.Ctx) uint {
	if userID, ok := c.Locals("userID").(uint); ok {
		return userID
	}
	return 0
}

func GetUsername(c *fiber.Ctx) string {
	if username, ok := c.Locals("username").(string); ok {
		return username
	}
	return ""
}
