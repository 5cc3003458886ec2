// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, an optional config.yaml and POMI_
// environment variables). It provides type-safe access to application
// settings while keeping configuration details out of business logic.
package config
