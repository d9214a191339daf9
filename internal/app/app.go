// Package app wires configuration, clients, and services into a running bot
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/finsilio/internal/clients/eodhd"
	"github.com/bobmcallan/finsilio/internal/clients/finnhub"
	"github.com/bobmcallan/finsilio/internal/clients/gemini"
	"github.com/bobmcallan/finsilio/internal/clients/telegram"
	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/interfaces"
	"github.com/bobmcallan/finsilio/internal/services/pipeline"
)

// App holds all initialized clients and services.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	LLMClient   interfaces.LLMClient
	MarketData  interfaces.MarketDataClient
	News        interfaces.NewsClient
	Messenger   interfaces.MessengerClient
	Pipeline    interfaces.PipelineService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, clients, and the pipeline service.
// configPath may be empty, in which case the default resolution logic is
// used. Clients whose credentials are missing are left nil: the pipeline
// degrades per stage instead of refusing to start.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, FINSILIO_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FINSILIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finsilio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finsilio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	a := &App{
		Config:      config,
		Logger:      logger,
		StartupTime: time.Now(),
	}

	ctx := context.Background()

	if key := config.Clients.Gemini.APIKey; key != "" {
		llm, err := gemini.NewClient(ctx, key,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client initialization failed - all prompts will be rejected")
		} else {
			a.LLMClient = llm
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - all prompts will be rejected")
	}

	if key := config.Clients.EODHD.APIKey; key != "" {
		a.MarketData = eodhd.NewClient(key,
			eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
			eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
			eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
			eodhd.WithLogger(logger),
		)
	} else {
		logger.Warn().Msg("EODHD API key not configured - price lookups will fail")
	}

	a.News = buildNewsClient(config, a.MarketData, logger)

	if token := config.Clients.Telegram.BotToken; token != "" {
		messenger, err := telegram.NewClient(token, telegram.WithLogger(logger))
		if err != nil {
			logger.Warn().Err(err).Msg("Telegram client initialization failed - responses cannot be delivered")
		} else {
			a.Messenger = messenger
		}
	} else {
		logger.Warn().Msg("Telegram bot token not configured - responses cannot be delivered")
	}

	a.Pipeline = pipeline.NewService(a.LLMClient, a.MarketData, a.News, a.Messenger, logger)

	return a, nil
}

// buildNewsClient selects the headline source per configuration. The EODHD
// client doubles as the news source unless Finnhub is selected and has a key.
func buildNewsClient(config *common.Config, marketData interfaces.MarketDataClient, logger *common.Logger) interfaces.NewsClient {
	if config.Clients.NewsProvider == "finnhub" {
		if key := config.Clients.Finnhub.APIKey; key != "" {
			return finnhub.NewClient(key, finnhub.WithLogger(logger))
		}
		logger.Warn().Msg("Finnhub selected as news provider but no API key configured - falling back to EODHD")
	}

	if news, ok := marketData.(interfaces.NewsClient); ok {
		return news
	}
	return nil
}
