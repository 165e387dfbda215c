package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so host settings cannot leak
// into the assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_PORT", "LOG_LEVEL", "LOG_CONSOLE",
		"DATA_DIR", "DATA_SEED", "DATA_AUTOSAVE",
		"FORECAST_HORIZON_DAYS",
		"ALERT_WEBHOOK_URL", "ALERT_AUTH_TOKEN", "ALERT_RISK_THRESHOLD",
		"SHEETS_CREDENTIALS_PATH", "SHEETS_SPREADSHEET_ID", "SHEETS_RANGE",
		"ALERT_CRON_SCHEDULE", "SNAPSHOT_CRON_SCHEDULE", "TIMEZONE",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080", LogLevel: "info"},
		Data:      DataConfig{Dir: "data", Seed: 42},
		Forecast:  ForecastConfig{HorizonDays: 14},
		Alerts:    AlertConfig{RiskThreshold: 60},
		Sheets:    SheetsConfig{Range: "Recommendations!A:H"},
		Scheduler: SchedulerConfig{AlertCron: "0 * * * *", SnapshotCron: "0 20 * * *", Timezone: "Asia/Amman"},
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.False(t, cfg.Server.LogConsole)

	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, int64(42), cfg.Data.Seed)
	assert.False(t, cfg.Data.Autosave)

	assert.Equal(t, 14, cfg.Forecast.HorizonDays)
	assert.Equal(t, 60.0, cfg.Alerts.RiskThreshold)
	assert.Equal(t, "Recommendations!A:H", cfg.Sheets.Range)

	assert.Equal(t, "0 * * * *", cfg.Scheduler.AlertCron)
	assert.Equal(t, "0 20 * * *", cfg.Scheduler.SnapshotCron)
	assert.Equal(t, "Asia/Amman", cfg.Scheduler.Timezone)

	assert.False(t, cfg.AlertsEnabled())
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_CONSOLE", "true")
	t.Setenv("DATA_SEED", "7")
	t.Setenv("DATA_AUTOSAVE", "true")
	t.Setenv("FORECAST_HORIZON_DAYS", "30")
	t.Setenv("ALERT_WEBHOOK_URL", "https://hooks.example.com/risk")
	t.Setenv("ALERT_RISK_THRESHOLD", "75.5")
	t.Setenv("SHEETS_CREDENTIALS_PATH", "/etc/creds.json")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.LogConsole)
	assert.Equal(t, int64(7), cfg.Data.Seed)
	assert.True(t, cfg.Data.Autosave)
	assert.Equal(t, 30, cfg.Forecast.HorizonDays)
	assert.Equal(t, 75.5, cfg.Alerts.RiskThreshold)
	assert.True(t, cfg.AlertsEnabled())
	assert.True(t, cfg.SheetsEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric seed", "DATA_SEED", "many"},
		{"non-numeric horizon", "FORECAST_HORIZON_DAYS", "soon"},
		{"zero horizon", "FORECAST_HORIZON_DAYS", "0"},
		{"non-numeric threshold", "ALERT_RISK_THRESHOLD", "high"},
		{"threshold above range", "ALERT_RISK_THRESHOLD", "140"},
		{"negative threshold", "ALERT_RISK_THRESHOLD", "-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("rejects nil", func(t *testing.T) {
		var cfg *Config
		assert.Error(t, cfg.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"missing data dir", func(c *Config) { c.Data.Dir = "" }},
		{"horizon too small", func(c *Config) { c.Forecast.HorizonDays = 0 }},
		{"threshold out of range", func(c *Config) { c.Alerts.RiskThreshold = 101 }},
		{"missing alert cron", func(c *Config) { c.Scheduler.AlertCron = "" }},
		{"missing snapshot cron", func(c *Config) { c.Scheduler.SnapshotCron = "" }},
		{"missing timezone", func(c *Config) { c.Scheduler.Timezone = "" }},
		{"sheets credentials without spreadsheet", func(c *Config) { c.Sheets.CredentialsPath = "/etc/creds.json" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnabledFlags(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.AlertsEnabled())
	assert.False(t, cfg.SheetsEnabled())

	cfg.Alerts.WebhookURL = "https://hooks.example.com/risk"
	assert.True(t, cfg.AlertsEnabled())

	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	assert.False(t, cfg.SheetsEnabled(), "credentials alone do not enable the export")

	cfg.Sheets.SpreadsheetID = "sheet-1"
	assert.True(t, cfg.SheetsEnabled())
}
