// Package config loads runtime configuration via viper from an app.env file
// and the process environment. Fail-fast: missing required values abort
// startup with an error.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the TalentBid service.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	RedisURL      string `mapstructure:"REDIS_URL"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// SweepSpec is the cron spec for the competitiveness sweeper,
	// e.g. "@every 6h". Empty disables the sweeper.
	SweepSpec string `mapstructure:"SWEEP_SPEC"`

	LogJSON bool `mapstructure:"LOG_JSON"`
	Debug   bool `mapstructure:"DEBUG"`
}

// Load reads app.env from path (optional) plus environment variables and
// returns a validated Config.
func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("MIGRATION_URL", "file://migrations")
	viper.SetDefault("SWEEP_SPEC", "@every 6h")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No app.env file, environment variables only.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.PostgresConn == "" {
		return nil, fmt.Errorf("POSTGRES_CONN is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &cfg, nil
}
