// Package config loads runtime settings and bootstraps the database.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvProduction = "production"

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL       string
	JWTSecret         string
	AppEnv            string
	Port              int
	DBConnectAttempts int
	DBConnectInterval time.Duration
	LogLevel          string
	CORSOrigins       []string
}

// IsProduction reports whether secure cookies and release mode apply
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from environment variables.
// A .env file, if any, must already have been loaded by the caller.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		DatabaseURL:       strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AppEnv:            strings.ToLower(v.GetString("APP_ENV")),
		Port:              v.GetInt("PORT"),
		DBConnectAttempts: v.GetInt("DB_CONNECT_ATTEMPTS"),
		DBConnectInterval: v.GetDuration("DB_CONNECT_INTERVAL"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		CORSOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 5000)
	v.SetDefault("DB_CONNECT_ATTEMPTS", 5)
	v.SetDefault("DB_CONNECT_INTERVAL", "2s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
}

// Validate checks that required settings are present and sane
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.DBConnectAttempts < 1 {
		errs = append(errs, errors.New("DB_CONNECT_ATTEMPTS must be at least 1"))
	}
	if c.DBConnectInterval < 0 {
		errs = append(errs, errors.New("DB_CONNECT_INTERVAL must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
