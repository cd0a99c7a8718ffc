package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	app := setupApp(t)

	resp := request(t, app, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeObject(t, resp)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "development", body["env"])
}
