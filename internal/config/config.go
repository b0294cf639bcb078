// Package config provides process-wide configuration for the DQ reporting CLI.
// Configuration is loaded once at process start and passed into components
// explicitly; nothing reads the environment after construction.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when neither flags, config file, nor environment set a value.
const (
	DefaultModel      = "gpt-4o-mini"
	DefaultTimeoutMS  = 30000
	DefaultPGPort     = 5432
	DefaultReportsDir = "reports"
)

// Config is the immutable process configuration.
// All fields are optional at load time; Validate checks ranges and commands
// check their own required fields.
type Config struct {
	// Completion service
	OpenAIAPIKey  string `json:"openai_api_key,omitempty"`
	OpenAIModel   string `json:"openai_model,omitempty"`
	OpenAIBaseURL string `json:"openai_base_url,omitempty" validate:"omitempty,url"`
	TimeoutMS     int    `json:"openai_timeout_ms,omitempty" validate:"gte=0"`

	// Data source. DatabaseURL wins over the discrete PG* fields.
	DatabaseURL string `json:"database_url,omitempty"`
	PGHost      string `json:"pg_host,omitempty"`
	PGPort      int    `json:"pg_port,omitempty" validate:"gte=0,lte=65535"`
	PGUser      string `json:"pg_user,omitempty"`
	PGPassword  string `json:"pg_password,omitempty"`
	PGDatabase  string `json:"pg_database,omitempty"`

	// Artifacts
	ReportsDir string `json:"reports_dir,omitempty"`
}

// FromEnv builds a Config from the process environment with built-in defaults
// for anything unset.
func FromEnv() Config {
	return Config{
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_MODEL", DefaultModel),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		TimeoutMS:     envIntOr("OPENAI_TIMEOUT_MS", DefaultTimeoutMS),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PGHost:        envOr("PGHOST", "localhost"),
		PGPort:        envIntOr("PGPORT", DefaultPGPort),
		PGUser:        os.Getenv("PGUSER"),
		PGPassword:    os.Getenv("PGPASSWORD"),
		PGDatabase:    os.Getenv("PGDATABASE"),
		ReportsDir:    envOr("REPORTS_DIR", DefaultReportsDir),
	}
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks field ranges and formats.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c Config) MergeWithDefaults(defaults Config) Config {
	result := c

	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.OpenAIModel == "" {
		result.OpenAIModel = defaults.OpenAIModel
	}
	if result.OpenAIBaseURL == "" {
		result.OpenAIBaseURL = defaults.OpenAIBaseURL
	}
	if result.TimeoutMS == 0 {
		result.TimeoutMS = defaults.TimeoutMS
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.PGHost == "" {
		result.PGHost = defaults.PGHost
	}
	if result.PGPort == 0 {
		result.PGPort = defaults.PGPort
	}
	if result.PGUser == "" {
		result.PGUser = defaults.PGUser
	}
	if result.PGPassword == "" {
		result.PGPassword = defaults.PGPassword
	}
	if result.PGDatabase == "" {
		result.PGDatabase = defaults.PGDatabase
	}
	if result.ReportsDir == "" {
		result.ReportsDir = defaults.ReportsDir
	}

	return result
}

// Timeout returns the completion timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return time.Duration(DefaultTimeoutMS) * time.Millisecond
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// DSN returns the Postgres connection string. DatabaseURL is used as-is when
// set; otherwise one is assembled from the PG* fields.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.PGHost, c.PGPort),
		Path:   "/" + c.PGDatabase,
	}
	if c.PGUser != "" {
		if c.PGPassword != "" {
			u.User = url.UserPassword(c.PGUser, c.PGPassword)
		} else {
			u.User = url.User(c.PGUser)
		}
	}
	return u.String()
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envIntOr(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
