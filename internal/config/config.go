package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Forecast  ForecastConfig
	Alerts    AlertConfig
	Sheets    SheetsConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port       string
	LogLevel   string
	LogConsole bool
}

// DataConfig controls where dataset CSVs live and how demo data is generated.
type DataConfig struct {
	Dir      string
	Seed     int64
	Autosave bool
}

// ForecastConfig holds demand-forecasting defaults.
type ForecastConfig struct {
	HorizonDays int
}

// AlertConfig configures the risk alert webhook. The webhook is optional;
// alerts stay disabled while the URL is empty.
type AlertConfig struct {
	WebhookURL    string
	AuthToken     string
	RiskThreshold float64
}

// SheetsConfig configures the optional Google Sheets recommendation export.
// The export stays disabled while either field is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// SchedulerConfig holds cron expressions for the background jobs.
type SchedulerConfig struct {
	AlertCron    string
	SnapshotCron string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	seed, err := getenvInt64("DATA_SEED", 42)
	if err != nil {
		return nil, err
	}

	horizon, err := getenvInt("FORECAST_HORIZON_DAYS", 14)
	if err != nil {
		return nil, err
	}

	threshold, err := getenvFloat("ALERT_RISK_THRESHOLD", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       getenvWithDefault("APP_PORT", "8080"),
			LogLevel:   getenvWithDefault("LOG_LEVEL", "info"),
			LogConsole: getenvBool("LOG_CONSOLE", false),
		},
		Data: DataConfig{
			Dir:      getenvWithDefault("DATA_DIR", "data"),
			Seed:     seed,
			Autosave: getenvBool("DATA_AUTOSAVE", false),
		},
		Forecast: ForecastConfig{
			HorizonDays: horizon,
		},
		Alerts: AlertConfig{
			WebhookURL:    os.Getenv("ALERT_WEBHOOK_URL"),
			AuthToken:     os.Getenv("ALERT_AUTH_TOKEN"),
			RiskThreshold: threshold,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			Range:           getenvWithDefault("SHEETS_RANGE", "Recommendations!A:H"),
		},
		Scheduler: SchedulerConfig{
			AlertCron:    getenvWithDefault("ALERT_CRON_SCHEDULE", "0 * * * *"),
			SnapshotCron: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Amman"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and sane.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Data.Dir == "" {
		return errors.New("DATA_DIR must not be empty")
	}

	if c.Forecast.HorizonDays < 1 {
		return errors.New("FORECAST_HORIZON_DAYS must be at least 1")
	}

	if c.Alerts.RiskThreshold < 0 || c.Alerts.RiskThreshold > 100 {
		return errors.New("ALERT_RISK_THRESHOLD must be within [0,100]")
	}

	if c.Scheduler.AlertCron == "" {
		return errors.New("ALERT_CRON_SCHEDULE must be provided")
	}

	if c.Scheduler.SnapshotCron == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Scheduler.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	// The sheets export needs both halves of its configuration to be usable.
	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("SHEETS_SPREADSHEET_ID must be provided when SHEETS_CREDENTIALS_PATH is set")
	}

	return nil
}

// AlertsEnabled reports whether a webhook destination is configured.
func (c *Config) AlertsEnabled() bool {
	return c.Alerts.WebhookURL != ""
}

// SheetsEnabled reports whether the Google Sheets export is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getenvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}
