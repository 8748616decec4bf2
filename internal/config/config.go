package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface. Credentials
// and endpoints are injected through the environment; nothing secret lives in
// source.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	Chat      ChatConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for the MongoDB record store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig carries the basic-auth credential table, keyed by username. A
// secret beginning with "$2" is treated as a bcrypt hash; anything else is
// compared in constant time.
type AuthConfig struct {
	Users map[string]string
}

// ChatConfig points at the incoming-webhook endpoint notifications are posted
// to. An empty URL disables outbound notifications.
type ChatConfig struct {
	WebhookURL string
}

// SheetsConfig configures the optional bookkeeping-spreadsheet exporter. Both
// fields empty disables the exporter.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
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

	users, err := parseUserTable(os.Getenv("AUTH_USERS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "pizzatime"),
		},
		Auth: AuthConfig{
			Users: users,
		},
		Chat: ChatConfig{
			WebhookURL: os.Getenv("CHAT_WEBHOOK_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 22 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Ho_Chi_Minh"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if len(c.Auth.Users) == 0 {
		return errors.New("AUTH_USERS must provide at least one user:secret pair")
	}

	// Sheets exporter is optional, but a half-configured one is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// SheetsEnabled reports whether the bookkeeping exporter is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

// parseUserTable decodes "user:secret,user2:secret2" pairs.
func parseUserTable(raw string) (map[string]string, error) {
	users := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return users, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, secret, ok := strings.Cut(pair, ":")
		if !ok || name == "" || secret == "" {
			return nil, fmt.Errorf("malformed AUTH_USERS entry %q", pair)
		}
		users[name] = secret
	}

	return users, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
