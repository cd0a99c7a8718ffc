package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardEmpty(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")

	resp := request(t, app, http.MethodGet, "/api/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeObject(t, resp)

	assert.Equal(t, float64(0), body["total_lists"])
	assert.Equal(t, float64(0), body["total_items"])
	assert.Equal(t, float64(0), body["completion_rate"])
	assert.Equal(t, []any{}, body["recent_items"])
}

func TestDashboardCounts(t *testing.T) {
	app := setupApp(t)
	alice := signup(t, app, "alice")
	bob := signup(t, app, "bob")

	workID := createList(t, app, alice, "Work")
	homeID := createList(t, app, alice, "Home")

	a := createItem(t, app, alice, workID, "Report", fiber.Map{"priority": "high"})
	createItem(t, app, alice, workID, "Overdue", fiber.Map{"due_date": "2020-01-01"})
	createItem(t, app, alice, homeID, "Dishes", nil)

	resp := request(t, app, http.MethodPut, listPath(workID, "/items/"+strconvUint(a)+"/toggle"), nil, alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodPost, listPath(workID, "/frameworks"),
		fiber.Map{"framework_key": "kanban"}, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Another user's data must not bleed into the numbers
	bobsID := createList(t, app, bob, "Bobs")
	createItem(t, app, bob, bobsID, "Noise", nil)

	resp = request(t, app, http.MethodGet, "/api/dashboard", nil, alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeObject(t, resp)

	assert.Equal(t, float64(2), body["total_lists"])
	assert.Equal(t, float64(3), body["total_items"])
	assert.Equal(t, float64(1), body["completed_items"])
	assert.Equal(t, float64(1), body["overdue_items"])
	// The high priority item was completed, so it no longer counts
	assert.Equal(t, float64(0), body["high_priority"])
	assert.Equal(t, 33.3, body["completion_rate"])

	usage := body["framework_usage"].(map[string]any)
	assert.Equal(t, float64(1), usage["kanban"])

	recent := body["recent_items"].([]any)
	require.NotEmpty(t, recent)
	first := recent[0].(map[string]any)
	assert.Contains(t, []any{"Work", "Home"}, first["list_name"])
}

func TestDashboardFullCompletion(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")
	listID := createList(t, app, cookie, "Tasks")

	for _, title := range []string{"A", "B"} {
		id := createItem(t, app, cookie, listID, title, nil)
		resp := request(t, app, http.MethodPut, listPath(listID, "/items/"+strconvUint(id)+"/toggle"), nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := request(t, app, http.MethodGet, "/api/dashboard", nil, cookie)
	body := decodeObject(t, resp)
	assert.Equal(t, float64(100), body["completion_rate"])
}
