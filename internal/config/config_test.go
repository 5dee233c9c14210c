package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db.local"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Asia/Jakarta", cfg.Service.Timezone)
	assert.Equal(t, 9, cfg.Booking.StartHour)
	assert.Equal(t, 18, cfg.Booking.EndHour)
	assert.Equal(t, 40, cfg.Booking.IntervalMinutes)
	assert.Equal(t, 30, cfg.Booking.MaxDaysAhead)
	assert.Equal(t, 30, cfg.Reminder.LeadMinutes)
	assert.Equal(t, 10, cfg.Prayer.BlockHalfWidthMinutes)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
[booking]
start_hour = 8
end_hour = 20
interval_minutes = 30
session_minutes = 30

[auth]
admin_ids = [10, 20]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Booking.StartHour)
	assert.Equal(t, 20, cfg.Booking.EndHour)
	assert.Equal(t, 30, cfg.Booking.IntervalMinutes)
	assert.Equal(t, []int64{10, 20}, cfg.Auth.AdminIDs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "start after end",
			content: `
[booking]
start_hour = 18
end_hour = 9
`,
		},
		{
			name: "bad timezone",
			content: `
[service]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "session too short",
			content: `
[booking]
session_minutes = 1
`,
		},
		{
			name: "notifier enabled without url",
			content: `
[notifier]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDatabase_DSN(t *testing.T) {
	d := Database{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "bekam_booking",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=bekam_booking sslmode=disable",
		d.DSN())
}
