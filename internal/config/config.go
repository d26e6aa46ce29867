// Package config loads application configuration from environment variables,
// with a .env file as an optional source for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
	Secrets  SecretsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string
	Port string
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds quote provider configuration.
type MarketConfig struct {
	Provider        string
	PriceTimeout    time.Duration
	QuoteStaleAfter time.Duration
	RefreshSchedule string
}

// SecretsConfig holds encryption configuration.
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from the environment. A missing .env file is not an
// error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	priceTimeout, err := getDuration("MARKET_PRICE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	staleAfter, err := getDuration("MARKET_QUOTE_STALE_AFTER", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "stockpilot.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Market: MarketConfig{
			Provider:        getEnv("MARKET_PROVIDER", "yahoo"),
			PriceTimeout:    priceTimeout,
			QuoteStaleAfter: staleAfter,
			RefreshSchedule: getEnv("MARKET_REFRESH_SCHEDULE", "0 */4 * * *"),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
