// Package config loads service configuration from a config.yaml file
// and the environment, environment winning.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Auth: comma-separated static bearer tokens and/or an HMAC secret
	// for JWT. Both empty disables auth (internal deployments).
	StaticTokens  string `mapstructure:"STATIC_TOKENS"`
	JWTHMACSecret string `mapstructure:"JWT_HMAC_SECRET"`

	// Redis, used only for the per-session UI preference cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisPrefDB   int    `mapstructure:"REDIS_PREF_DB"`

	// Path of the legacy local-storage snapshot to import on startup.
	// Empty or missing file skips the import.
	LegacySnapshotPath string `mapstructure:"LEGACY_SNAPSHOT_PATH"`

	// Google Calendar OAuth2. All three empty disables the integration.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
}

// Load reads config.yaml (if present) and the environment.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_PREF_DB", 0)
	viper.SetDefault("LEGACY_SNAPSHOT_PATH", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production
// settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
