package handlers

import (
	"net/http"
	"testing"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTag(t *testing.T, app *fiber.App, cookie, name, color string) uint {
	t.Helper()
	resp := request(t, app, http.MethodPost, "/api/tags",
		fiber.Map{"name": name, "color": color}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return uint(decodeObject(t, resp)["id"].(float64))
}

func TestCreateAndListTags(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")

	createTag(t, app, cookie, "work", "#ff0000")
	createTag(t, app, cookie, "errands", "")

	resp := request(t, app, http.MethodGet, "/api/tags", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tags := decodeArray(t, resp)
	require.Len(t, tags, 2)

	// Name-ordered, bad color falls back to the default
	assert.Equal(t, "errands", tags[0]["name"])
	assert.Equal(t, "#6366f1", tags[0]["color"])
	assert.Equal(t, "work", tags[1]["name"])
	assert.Equal(t, "#ff0000", tags[1]["color"])
}

func TestCreateTagDuplicateConflict(t *testing.T) {
	app := setupApp(t)
	alice := signup(t, app, "alice")
	bob := signup(t, app, "bob")

	createTag(t, app, alice, "work", "")
	resp := request(t, app, http.MethodPost, "/api/tags", fiber.Map{"name": "work"}, alice)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Uniqueness is per user; another account can reuse the name
	createTag(t, app, bob, "work", "")
}

func TestItemTagAttachDetach(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")
	listID := createList(t, app, cookie, "Tasks")
	itemID := createItem(t, app, cookie, listID, "Task", nil)
	tagID := createTag(t, app, cookie, "work", "#ff0000")

	// Attaching twice is a no-op
	for i := 0; i < 2; i++ {
		resp := request(t, app, http.MethodPost, itemPath(itemID, "/tags/"+strconvUint(tagID)), nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	var count int64
	database.DB.Model(&models.ItemTag{}).Where("item_id = ?", itemID).Count(&count)
	assert.Equal(t, int64(1), count)

	resp := request(t, app, http.MethodGet, listPath(listID, "/items"), nil, cookie)
	items := decodeArray(t, resp)
	require.Len(t, items, 1)
	itemTags := items[0]["tags"].([]any)
	require.Len(t, itemTags, 1)
	tag := itemTags[0].(map[string]any)
	assert.Equal(t, "work", tag["name"])
	assert.Equal(t, "#ff0000", tag["color"])

	resp = request(t, app, http.MethodDelete, itemPath(itemID, "/tags/"+strconvUint(tagID)), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	database.DB.Model(&models.ItemTag{}).Where("item_id = ?", itemID).Count(&count)
	assert.Zero(t, count)
}

func TestAttachForeignTagRejected(t *testing.T) {
	app := setupApp(t)
	alice := signup(t, app, "alice")
	bob := signup(t, app, "bob")

	listID := createList(t, app, alice, "Tasks")
	itemID := createItem(t, app, alice, listID, "Task", nil)
	bobsTag := createTag(t, app, bob, "sneaky", "")

	resp := request(t, app, http.MethodPost, itemPath(itemID, "/tags/"+strconvUint(bobsTag)), nil, alice)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// And bob can't tag alice's items at all
	aliceTag := createTag(t, app, alice, "mine", "")
	resp = request(t, app, http.MethodPost, itemPath(itemID, "/tags/"+strconvUint(aliceTag)), nil, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteTagRemovesLinks(t *testing.T) {
	app := setupApp(t)
	cookie := signup(t, app, "alice")
	listID := createList(t, app, cookie, "Tasks")
	itemID := createItem(t, app, cookie, listID, "Task", nil)
	tagID := createTag(t, app, cookie, "work", "")

	resp := request(t, app, http.MethodPost, itemPath(itemID, "/tags/"+strconvUint(tagID)), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodDelete, "/api/tags/"+strconvUint(tagID), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.ItemTag{}).Where("tag_id = ?", tagID).Count(&count)
	assert.Zero(t, count)

	resp = request(t, app, http.MethodGet, listPath(listID, "/items"), nil, cookie)
	items := decodeArray(t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, []any{}, items[0]["tags"])
}
