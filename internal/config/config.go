// Package config resolves startup configuration from the environment.
// The backend base URL is mandatory: a deployment that does not say where its
// backend lives is a broken deployment, not one we should guess for.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	// APIBaseURL is the backend origin, e.g. https://api.example.com.
	APIBaseURL string `validate:"required,url"`

	// CredentialsFile is where the bearer token is persisted between runs.
	CredentialsFile string `validate:"required"`

	// HTTPTimeout applies to every backend call.
	HTTPTimeout time.Duration

	// NotificationTTL is how long a toast stays in the queue.
	NotificationTTL time.Duration
}

const (
	defaultHTTPTimeout     = 15 * time.Second
	defaultNotificationTTL = 5 * time.Second
)

// Load reads configuration from environment variables. API_BASE_URL is
// required; there is no origin-inference fallback.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:      os.Getenv("API_BASE_URL"),
		CredentialsFile: os.Getenv("CREDENTIALS_FILE"),
		HTTPTimeout:     defaultHTTPTimeout,
		NotificationTTL: defaultNotificationTTL,
	}

	if cfg.CredentialsFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.CredentialsFile = filepath.Join(dir, "silverthorne", "credentials")
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if v := os.Getenv("NOTIFICATION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("NOTIFICATION_TTL: %w", err)
		}
		cfg.NotificationTTL = d
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: API_BASE_URL is required and must be a URL: %w", err)
	}

	// Trailing slash makes every joined route wrong.
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse API_BASE_URL: %w", err)
	}
	u.Path = ""
	cfg.APIBaseURL = u.String()

	return cfg, nil
}
