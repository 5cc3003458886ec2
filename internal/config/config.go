package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Docs     DocsConfig     `mapstructure:"docs"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	MaxBodyBytes           int64  `mapstructure:"max_body_bytes" validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// ShutdownTimeout is the grace period given to in-flight requests.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig selects and tunes the database connection.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	// JWTSecret is required unless Disabled is set.
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	// Disabled turns off bearer token checks. Local development only.
	Disabled bool `mapstructure:"disabled"`
}

// TokenLifetime is the validity period of issued access tokens.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// DocsConfig sets the info block of the published OpenAPI document.
type DocsConfig struct {
	Title   string `mapstructure:"title"`
	Version string `mapstructure:"version"`
}
