package handlers

import (
	"html"
	"regexp"
	"strings"

	"github.com/olawale1rty/productivity-tracker/models"
)

const (
	maxStr  = 1000
	maxText = 5000
)

var (
	dateRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)
	filenameRegex = regexp.MustCompile(`[^a-zA-Z0-9_\- ]`)
)

// sanitize strips, truncates and HTML-escapes a short string input
func sanitize(val string) string {
	return sanitizeN(val, maxStr)
}

// sanitizeText strips, truncates and HTML-escapes a longer text input
func sanitizeText(val string) string {
	return sanitizeN(val, maxText)
}

func sanitizeN(val string, maxlen int) string {
	val = strings.TrimSpace(val)
	if runes := []rune(val); len(runes) > maxlen {
		val = string(runes[:maxlen])
	}
	return html.EscapeString(val)
}

// validDate returns a pointer to val if it looks like YYYY-MM-DD, else nil
func validDate(val string) *string {
	if val == "" || !dateRegex.MatchString(val) {
		return nil
	}
	return &val
}

// normalizePriority falls back to medium on unknown values
func normalizePriority(p models.Priority) models.Priority {
	if !models.ValidPriority(p) {
		return models.PriorityMedium
	}
	return p
}

// normalizeColor falls back to the default tag color on bad input
func normalizeColor(color string) string {
	if !hexColorRegex.MatchString(color) {
		return models.DefaultTagColor
	}
	return color
}
