package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/revolv-sh/revolv-deploy/internal/core/deploy"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all CLI configuration. Every deployment field can be
// overridden through its environment variable; unset fields are derived at
// resolve time.
type Config struct {
	// AppName overrides the generated app name (APP_NAME).
	AppName string `mapstructure:"app_name"`

	// ResourceGroup overrides the derived resource group (RESOURCE_GROUP).
	ResourceGroup string `mapstructure:"resource_group"`

	// Location overrides the Azure region (LOCATION).
	Location string `mapstructure:"location"`

	// EncryptionKey overrides the generated encryption key (ENCRYPTION_KEY).
	EncryptionKey string `mapstructure:"encryption_key"`

	// SharedSecret overrides the generated shared secret
	// (REVOLV_SHARED_SECRET).
	SharedSecret string `mapstructure:"shared_secret"`

	// SubscriptionID selects the Azure subscription
	// (AZURE_SUBSCRIPTION_ID). Required except for dry runs.
	SubscriptionID string `mapstructure:"subscription_id"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Overrides converts the configured overrides into the resolver's input.
func (c *Config) Overrides() deploy.Overrides {
	return deploy.Overrides{
		AppName:       c.AppName,
		ResourceGroup: c.ResourceGroup,
		Location:      c.Location,
		EncryptionKey: c.EncryptionKey,
		SharedSecret:  c.SharedSecret,
	}
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// The override variables keep the exact names the deployed application
	// and operators already use, so they are bound explicitly instead of
	// through a prefix.
	bindings := map[string]string{
		"app_name":        "APP_NAME",
		"resource_group":  "RESOURCE_GROUP",
		"location":        "LOCATION",
		"encryption_key":  "ENCRYPTION_KEY",
		"shared_secret":   "REVOLV_SHARED_SECRET",
		"subscription_id": "AZURE_SUBSCRIPTION_ID",
		"log.level":       "LOG_LEVEL",
		"log.format":      "LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
// Log output goes to stderr so stdout stays reserved for the plan summary
// and result URLs.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
