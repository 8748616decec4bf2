package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaTimeVN/pizza-backend/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("AUTH_USERS", "owner:topsecret,workshop:othersecret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "pizzatime", cfg.MongoDB.DBName)
	assert.Equal(t, "0 22 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Reporting.Timezone)
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoad_UserTable(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"owner":    "topsecret",
		"workshop": "othersecret",
	}, cfg.Auth.Users)
}

func TestLoad_MalformedUserTable(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_USERS", "owner-without-secret")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "malformed AUTH_USERS entry")
}

func TestLoad_RequiresMongoURI(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGODB_URI", "")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "MONGODB_URI")
}

func TestLoad_RequiresUsers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_USERS", "")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "AUTH_USERS")
}

func TestLoad_RejectsHalfConfiguredSheets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "must be set together")
}
