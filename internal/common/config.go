// Package common provides shared utilities for Finsilio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Finsilio
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	// NewsProvider selects the headline source: "eodhd" (default) or "finnhub".
	NewsProvider string         `toml:"news_provider"`
	Gemini       GeminiConfig   `toml:"gemini"`
	EODHD        EODHDConfig    `toml:"eodhd"`
	Finnhub      FinnhubConfig  `toml:"finnhub"`
	Telegram     TelegramConfig `toml:"telegram"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// FinnhubConfig holds Finnhub API configuration
type FinnhubConfig struct {
	APIKey string `toml:"api_key"`
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Clients: ClientsConfig{
			NewsProvider: "eodhd",
			Gemini: GeminiConfig{
				Model: "gemini-1.5-flash",
			},
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validateNewsProvider(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINSILIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FINSILIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FINSILIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FINSILIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if np := os.Getenv("FINSILIO_NEWS_PROVIDER"); np != "" {
		config.Clients.NewsProvider = strings.ToLower(np)
	}

	if model := os.Getenv("FINSILIO_GEMINI_MODEL"); model != "" {
		config.Clients.Gemini.Model = model
	}

	// API keys resolve from provider-native variables first, then the
	// FINSILIO_* namespace, then whatever the config file supplied.
	config.Clients.Gemini.APIKey = resolveAPIKey(config.Clients.Gemini.APIKey,
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "FINSILIO_GEMINI_API_KEY")
	config.Clients.EODHD.APIKey = resolveAPIKey(config.Clients.EODHD.APIKey,
		"EODHD_API_KEY", "FINSILIO_EODHD_API_KEY")
	config.Clients.Finnhub.APIKey = resolveAPIKey(config.Clients.Finnhub.APIKey,
		"FINNHUB_API_KEY", "FINSILIO_FINNHUB_API_KEY")
	config.Clients.Telegram.BotToken = resolveAPIKey(config.Clients.Telegram.BotToken,
		"TELEGRAM_BOT_TOKEN", "FINSILIO_TELEGRAM_BOT_TOKEN")
}

// resolveAPIKey returns the first non-empty environment value among envVars,
// falling back to the config file value.
func resolveAPIKey(fallback string, envVars ...string) string {
	for _, name := range envVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return fallback
}

// validateNewsProvider ensures NewsProvider is a known value, defaulting to "eodhd".
func validateNewsProvider(config *Config) {
	np := strings.ToLower(strings.TrimSpace(config.Clients.NewsProvider))
	if np != "eodhd" && np != "finnhub" {
		np = "eodhd"
	}
	config.Clients.NewsProvider = np
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
