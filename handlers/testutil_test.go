package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep the generated config out of the real home directory
	dir, err := os.MkdirTemp("", "tracker-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("TRACKER_CONFIG_DIR", dir)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// setupApp stands up the production routing over a fresh per-test database.
// A temp file is used rather than ":memory:" because with this driver every
// pooled connection to ":memory:" opens its own separate empty database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	require.NoError(t, database.Open(filepath.Join(t.TempDir(), "test.db")))

	app := fiber.New(fiber.Config{BodyLimit: 2 * 1024 * 1024})
	SetupRoutes(app)
	return app
}

// request performs a JSON request against the app, optionally authenticated
func request(t *testing.T, app *fiber.App, method, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeObject reads a JSON object response body
func decodeObject(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// decodeInto reads a JSON response body into any shape
func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// decodeArray reads a JSON array response body
func decodeArray(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signup registers a user and returns the session cookie value
func signup(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := request(t, app, http.MethodPost, "/api/register",
		fiber.Map{"username": username, "password": "password123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck.Value
		}
	}
	t.Fatal("register response carried no session cookie")
	return ""
}

// createList creates a list and returns its id
func createList(t *testing.T, app *fiber.App, cookie, name string) uint {
	t.Helper()
	resp := request(t, app, http.MethodPost, "/api/lists",
		fiber.Map{"name": name, "description": "test list"}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeObject(t, resp)
	return uint(body["id"].(float64))
}

// createItem adds an item to a list and returns its id
func createItem(t *testing.T, app *fiber.App, cookie string, listID uint, title string, extra fiber.Map) uint {
	t.Helper()
	body := fiber.Map{"title": title}
	for k, v := range extra {
		body[k] = v
	}
	resp := request(t, app, http.MethodPost, listPath(listID, "/items"), body, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decodeObject(t, resp)
	return uint(out["id"].(float64))
}

func listPath(listID uint, suffix string) string {
	return "/api/lists/" + strconvUint(listID) + suffix
}

func itemPath(itemID uint, suffix string) string {
	return "/api/items/" + strconvUint(itemID) + suffix
}

func strconvUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
