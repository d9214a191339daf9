package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Environment != "development" {
		t.Errorf("unexpected environment: %q", config.Environment)
	}
	if config.Server.Host != "0.0.0.0" || config.Server.Port != 8000 {
		t.Errorf("unexpected server defaults: %s:%d", config.Server.Host, config.Server.Port)
	}
	if config.Clients.NewsProvider != "eodhd" {
		t.Errorf("unexpected news provider: %q", config.Clients.NewsProvider)
	}
	if config.Clients.Gemini.Model != "gemini-1.5-flash" {
		t.Errorf("unexpected Gemini model: %q", config.Clients.Gemini.Model)
	}
	if config.Clients.EODHD.BaseURL != "https://eodhd.com/api" {
		t.Errorf("unexpected EODHD base URL: %q", config.Clients.EODHD.BaseURL)
	}
	if config.Logging.Level != "info" {
		t.Errorf("unexpected log level: %q", config.Logging.Level)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsilio.toml")
	content := `
environment = "production"

[server]
host = "127.0.0.1"
port = 9000

[clients]
news_provider = "finnhub"

[clients.gemini]
api_key = "file-gemini-key"
model = "gemini-1.5-pro"

[clients.eodhd]
api_key = "file-eodhd-key"
timeout = "10s"

[clients.telegram]
bot_token = "file-bot-token"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Environment != "production" {
		t.Errorf("unexpected environment: %q", config.Environment)
	}
	if config.Server.Host != "127.0.0.1" || config.Server.Port != 9000 {
		t.Errorf("unexpected server config: %s:%d", config.Server.Host, config.Server.Port)
	}
	if config.Clients.NewsProvider != "finnhub" {
		t.Errorf("unexpected news provider: %q", config.Clients.NewsProvider)
	}
	if config.Clients.Gemini.APIKey != "file-gemini-key" {
		t.Errorf("unexpected Gemini key: %q", config.Clients.Gemini.APIKey)
	}
	if config.Clients.Gemini.Model != "gemini-1.5-pro" {
		t.Errorf("unexpected Gemini model: %q", config.Clients.Gemini.Model)
	}
	if config.Clients.EODHD.GetTimeout() != 10*time.Second {
		t.Errorf("unexpected EODHD timeout: %v", config.Clients.EODHD.GetTimeout())
	}
	if config.Clients.Telegram.BotToken != "file-bot-token" {
		t.Errorf("unexpected bot token: %q", config.Clients.Telegram.BotToken)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("unexpected log level: %q", config.Logging.Level)
	}

	// Defaults survive a partial file.
	if config.Clients.EODHD.BaseURL != "https://eodhd.com/api" {
		t.Errorf("expected default base URL, got %q", config.Clients.EODHD.BaseURL)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.Port != 8000 {
		t.Errorf("expected default port, got %d", config.Server.Port)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FINSILIO_ENV", "production")
	t.Setenv("FINSILIO_PORT", "9090")
	t.Setenv("FINSILIO_LOG_LEVEL", "warn")
	t.Setenv("FINSILIO_NEWS_PROVIDER", "FINNHUB")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Environment != "production" {
		t.Errorf("unexpected environment: %q", config.Environment)
	}
	if config.Server.Port != 9090 {
		t.Errorf("unexpected port: %d", config.Server.Port)
	}
	if config.Logging.Level != "warn" {
		t.Errorf("unexpected log level: %q", config.Logging.Level)
	}
	if config.Clients.NewsProvider != "finnhub" {
		t.Errorf("unexpected news provider: %q", config.Clients.NewsProvider)
	}
}

func TestLoadConfig_APIKeyResolution(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-bot-token")
	t.Setenv("EODHD_API_KEY", "")
	t.Setenv("FINSILIO_EODHD_API_KEY", "")

	path := filepath.Join(t.TempDir(), "finsilio.toml")
	content := `
[clients.gemini]
api_key = "file-gemini-key"

[clients.eodhd]
api_key = "file-eodhd-key"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Environment wins over the file.
	if config.Clients.Gemini.APIKey != "env-gemini-key" {
		t.Errorf("unexpected Gemini key: %q", config.Clients.Gemini.APIKey)
	}
	if config.Clients.Telegram.BotToken != "env-bot-token" {
		t.Errorf("unexpected bot token: %q", config.Clients.Telegram.BotToken)
	}
	// File value survives when no environment variable is set.
	if config.Clients.EODHD.APIKey != "file-eodhd-key" {
		t.Errorf("unexpected EODHD key: %q", config.Clients.EODHD.APIKey)
	}
}

func TestLoadConfig_InvalidNewsProviderFallsBack(t *testing.T) {
	t.Setenv("FINSILIO_NEWS_PROVIDER", "bloomberg")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Clients.NewsProvider != "eodhd" {
		t.Errorf("expected fallback to eodhd, got %q", config.Clients.NewsProvider)
	}
}

func TestEODHDConfig_GetTimeout(t *testing.T) {
	c := EODHDConfig{Timeout: "5s"}
	if c.GetTimeout() != 5*time.Second {
		t.Errorf("unexpected timeout: %v", c.GetTimeout())
	}

	c.Timeout = "not-a-duration"
	if c.GetTimeout() != 30*time.Second {
		t.Errorf("expected 30s fallback, got %v", c.GetTimeout())
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		environment string
		want        bool
	}{
		{"production", true},
		{"PROD", true},
		{" production ", true},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		c := &Config{Environment: tt.environment}
		if got := c.IsProduction(); got != tt.want {
			t.Errorf("IsProduction(%q) = %v, want %v", tt.environment, got, tt.want)
		}
	}
}
