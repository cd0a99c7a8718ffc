package services

import (
	"os"
	"testing"

	"github.com/olawale1rty/productivity-tracker/database"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tracker-svc-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("TRACKER_CONFIG_DIR", dir)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestLogAuditSync(t *testing.T) {
	require.NoError(t, database.Open(":memory:"))

	listID := uint(7)
	err := LogAuditSync(3, "alice", models.AuditActionShareCreate, &listID, "Shared with bob (view)", "127.0.0.1")
	require.NoError(t, err)

	var logs []models.AuditLog
	database.DB.Find(&logs)
	require.Len(t, logs, 1)

	assert.Equal(t, uint(3), logs[0].UserID)
	assert.Equal(t, "alice", logs[0].Username)
	assert.Equal(t, models.AuditActionShareCreate, logs[0].Action)
	if assert.NotNil(t, logs[0].ListID) {
		assert.Equal(t, uint(7), *logs[0].ListID)
	}
	assert.Equal(t, "127.0.0.1", logs[0].IPAddress)
	assert.False(t, logs[0].CreatedAt.IsZero())
}
