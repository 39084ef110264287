package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
type Config struct {
	Anbima   AnbimaConfig   // ANBIMA endpoint and run-window settings
	Postgres PostgresConfig // PostgreSQL connection settings
	Notify   NotifyConfig   // operator notification channel
}

// AnbimaConfig defines where daily marking files live and how the run window
// is computed.
//
// Fields:
//   - BaseURL: endpoint serving the ms{YYMMDD}.txt files.
//   - TimeoutSeconds: per-request HTTP timeout.
//   - CutoffHour: local hour after which ANBIMA publishes same-day data;
//     before it, the window ends at the previous business day.
//   - BackfillStart: first reference date to load when the table is empty
//     ("YYYY-MM-DD").
type AnbimaConfig struct {
	BaseURL        string
	TimeoutSeconds int
	CutoffHour     int
	BackfillStart  string
}

// NotifyConfig defines the Teams incoming-webhook channel for run outcomes.
type NotifyConfig struct {
	WebhookURL     string
	TimeoutSeconds int
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance, populated once
// via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from a .env file or
// directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
func LoadConfig() {
	// Default values
	viper.SetDefault("ANBIMA_BASE_URL", "https://www.anbima.com.br/informacoes/merc-sec/arqs")
	viper.SetDefault("ANBIMA_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PUBLISH_CUTOFF_HOUR", 18)
	viper.SetDefault("BACKFILL_START_DATE", "2019-01-01")

	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 10)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "tpfpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Anbima: AnbimaConfig{
			BaseURL:        viper.GetString("ANBIMA_BASE_URL"),
			TimeoutSeconds: viper.GetInt("ANBIMA_TIMEOUT_SECONDS"),
			CutoffHour:     viper.GetInt("PUBLISH_CUTOFF_HOUR"),
			BackfillStart:  viper.GetString("BACKFILL_START_DATE"),
		},
		Notify: NotifyConfig{
			WebhookURL:     viper.GetString("TEAMS_WEBHOOK_URL"),
			TimeoutSeconds: viper.GetInt("NOTIFY_TIMEOUT_SECONDS"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Anbima.BaseURL == "" {
		missing = append(missing, "ANBIMA_BASE_URL")
	}
	if AppConfig.Anbima.BackfillStart == "" {
		missing = append(missing, "BACKFILL_START_DATE")
	}
	if AppConfig.Notify.WebhookURL == "" {
		missing = append(missing, "TEAMS_WEBHOOK_URL")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	if AppConfig.Anbima.CutoffHour < 0 || AppConfig.Anbima.CutoffHour > 23 {
		log.Fatalf("PUBLISH_CUTOFF_HOUR must be between 0 and 23, got %d\n", AppConfig.Anbima.CutoffHour)
	}

	if len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v\n", missing)
	}
}
