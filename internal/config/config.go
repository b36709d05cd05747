package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Environment variable overrides, matching the original deployment's
// VITE_*_SCRIPT_URL convention
const (
	EnvAuthScriptURL = "GESTORPRO_AUTH_SCRIPT_URL"
	EnvDataScriptURL = "GESTORPRO_DATA_SCRIPT_URL"
)

// Defaults
const (
	DefaultBotPollSeconds       = 5
	DefaultDashboardPollSeconds = 30
	DefaultRequestTimeoutSecs   = 30
)

// Config represents the application configuration
type Config struct {
	// Auth script URL (findUser / verifyToken / registerUser)
	AuthScriptURL string `json:"auth_script_url"`

	// Data script URL (all entity actions)
	DataScriptURL string `json:"data_script_url"`

	// Bot list poll interval in seconds
	BotPollSeconds int `json:"bot_poll_seconds,omitempty"`

	// Dashboard poll interval in seconds
	DashboardPollSeconds int `json:"dashboard_poll_seconds,omitempty"`

	// HTTP request timeout in seconds
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty"`
}

// Load loads the configuration from the given file path. A missing file
// yields defaults; environment variables override the file in either case.
func Load(path string) (*Config, error) {
	cfg := &Config{
		BotPollSeconds:        DefaultBotPollSeconds,
		DashboardPollSeconds:  DefaultDashboardPollSeconds,
		RequestTimeoutSeconds: DefaultRequestTimeoutSecs,
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if url := os.Getenv(EnvAuthScriptURL); url != "" {
		cfg.AuthScriptURL = url
	}
	if url := os.Getenv(EnvDataScriptURL); url != "" {
		cfg.DataScriptURL = url
	}

	if cfg.BotPollSeconds <= 0 {
		cfg.BotPollSeconds = DefaultBotPollSeconds
	}
	if cfg.DashboardPollSeconds <= 0 {
		cfg.DashboardPollSeconds = DefaultDashboardPollSeconds
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = DefaultRequestTimeoutSecs
	}

	return cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that both script endpoints are configured. Run once before
// any command that talks to the backend so misconfiguration fails fast.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AuthScriptURL, validation.Required, is.URL),
		validation.Field(&c.DataScriptURL, validation.Required, is.URL),
	)
}

// BotPollInterval returns the bot poll interval as a duration
func (c *Config) BotPollInterval() time.Duration {
	return time.Duration(c.BotPollSeconds) * time.Second
}

// DashboardPollInterval returns the dashboard poll interval as a duration
func (c *Config) DashboardPollInterval() time.Duration {
	return time.Duration(c.DashboardPollSeconds) * time.Second
}

// RequestTimeout returns the HTTP timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Dir returns the gestorpro config directory, creating it if needed
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".gestorpro")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}

// Path returns the config file path inside the config directory
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
