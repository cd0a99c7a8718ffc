package handlers

import (
	"strings"
	"testing"

	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello", sanitize("  hello  "))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", sanitize("<b>bold</b>"))

	long := strings.Repeat("a", 1500)
	assert.Len(t, sanitize(long), 1000)

	longText := strings.Repeat("a", 6000)
	assert.Len(t, sanitizeText(longText), 5000)
}

func TestValidDate(t *testing.T) {
	got := validDate("2026-08-31")
	if assert.NotNil(t, got) {
		assert.Equal(t, "2026-08-31", *got)
	}
	assert.Nil(t, validDate(""))
	assert.Nil(t, validDate("31/08/2026"))
	assert.Nil(t, validDate("2026-8-31"))
	assert.Nil(t, validDate("tomorrow"))
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, models.PriorityLow, normalizePriority("low"))
	assert.Equal(t, models.PriorityHigh, normalizePriority("high"))
	assert.Equal(t, models.PriorityMedium, normalizePriority(""))
	assert.Equal(t, models.PriorityMedium, normalizePriority("urgent"))
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#ff00AA", normalizeColor("#ff00AA"))
	assert.Equal(t, models.DefaultTagColor, normalizeColor(""))
	assert.Equal(t, models.DefaultTagColor, normalizeColor("red"))
	assert.Equal(t, models.DefaultTagColor, normalizeColor("#fff"))
	assert.Equal(t, models.DefaultTagColor, normalizeColor("#gggggg"))
}
