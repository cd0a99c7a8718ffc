package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSONRoundTrip(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")
	listID := createList(t, app, cookie, "Project")

	createItem(t, app, cookie, listID, "Design", fiber.Map{"priority": "high", "due_date": "2026-09-15"})
	done := createItem(t, app, cookie, listID, "Research", fiber.Map{"description": "read papers"})
	resp := request(t, app, http.MethodPut, listPath(listID, "/items/"+strconvUint(done)+"/toggle"), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodPost, listPath(listID, "/frameworks"),
		fiber.Map{"framework_key": "eisenhower"}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodGet, listPath(listID, "/export?format=json"), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Project.json")
	doc := decodeObject(t, resp)

	assert.Equal(t, "Project", doc["name"])
	assert.Equal(t, []any{"eisenhower"}, doc["frameworks"])
	items := doc["items"].([]any)
	require.Len(t, items, 2)

	// Feed the export straight back in as an import
	doc["name"] = "Project Copy"
	resp = request(t, app, http.MethodPost, "/api/lists/import", doc, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	copyID := uint(decodeObject(t, resp)["id"].(float64))

	resp = request(t, app, http.MethodGet, listPath(copyID, "/items"), nil, cookie)
	copied := decodeArray(t, resp)
	require.Len(t, copied, 2)
	assert.Equal(t, "Design", copied[0]["title"])
	assert.Equal(t, "high", copied[0]["priority"])
	assert.Equal(t, "2026-09-15", copied[0]["due_date"])
	assert.Equal(t, false, copied[0]["completed"])
	assert.Equal(t, "Research", copied[1]["title"])
	assert.Equal(t, true, copied[1]["completed"])

	resp = request(t, app, http.MethodGet, listPath(copyID, "/frameworks"), nil, cookie)
	var keys []string
	decodeInto(t, resp, &keys)
	assert.Equal(t, []string{"eisenhower"}, keys)
}

func TestExportCSV(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")
	listID := createList(t, app, cookie, "Plan!!? <2026>")

	createItem(t, app, cookie, listID, "Task", fiber.Map{"priority": "low", "due_date": "2026-10-01"})
	done := createItem(t, app, cookie, listID, "Done", nil)
	resp := request(t, app, http.MethodPut, listPath(listID, "/items/"+strconvUint(done)+"/toggle"), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodGet, listPath(listID, "/export?format=csv"), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	// The filename is stripped down to safe characters
	disposition := resp.Header.Get("Content-Disposition")
	assert.Contains(t, disposition, "Plan")
	assert.NotContains(t, disposition, "!")
	assert.NotContains(t, disposition, "<")

	defer resp.Body.Close()
	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"title", "description", "priority", "due_date", "completed"}, rows[0])
	assert.Equal(t, []string{"Task", "", "low", "2026-10-01", "0"}, rows[1])
	assert.Equal(t, []string{"Done", "", "medium", "", "1"}, rows[2])
}

func TestExportOwnerOnly(t *testing.T) {
	app := setupApp(t)
	alice := signup(t, app, "alice")
	bob := signup(t, app, "bob")

	listID := createList(t, app, alice, "Plan")
	shareWith(t, app, alice, listID, "bob", "edit")

	resp := request(t, app, http.MethodGet, listPath(listID, "/export"), nil, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportSkipsAndValidates(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")

	resp := request(t, app, http.MethodPost, "/api/lists/import", fiber.Map{
		"name": "",
		"items": []fiber.Map{
			{"title": "Kept", "priority": "bogus", "due_date": "not-a-date"},
			{"title": "   "},
			{"title": "Also Kept", "completed": true},
		},
		"frameworks": []string{"kanban", "not_a_framework"},
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	listID := uint(decodeObject(t, resp)["id"].(float64))

	resp = request(t, app, http.MethodGet, "/api/lists", nil, cookie)
	lists := decodeArray(t, resp)
	require.Len(t, lists, 1)
	assert.Equal(t, "Imported List", lists[0]["name"])

	resp = request(t, app, http.MethodGet, listPath(listID, "/items"), nil, cookie)
	items := decodeArray(t, resp)
	require.Len(t, items, 2, "untitled items are skipped")
	assert.Equal(t, "Kept", items[0]["title"])
	assert.Equal(t, "medium", items[0]["priority"])
	assert.Nil(t, items[0]["due_date"])
	assert.Equal(t, true, items[1]["completed"])

	resp = request(t, app, http.MethodGet, listPath(listID, "/frameworks"), nil, cookie)
	var keys []string
	decodeInto(t, resp, &keys)
	assert.Equal(t, []string{"kanban"}, keys, "unknown framework keys are dropped")
}

func TestImportTooManyItems(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")

	items := make([]fiber.Map, 1001)
	for i := range items {
		items[i] = fiber.Map{"title": "x"}
	}
	resp := request(t, app, http.MethodPost, "/api/lists/import",
		fiber.Map{"name": "Flood", "items": items}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportFilenameFallback(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")
	// Sanitization escapes the name; every char is stripped from the filename
	listID := createList(t, app, cookie, "日本語")

	resp := request(t, app, http.MethodGet, listPath(listID, "/export"), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(resp.Header.Get("Content-Disposition"), "export.json"))
}
