// Package interfaces defines collaborator and service contracts for Finsilio
package interfaces

import (
	"context"

	"github.com/bobmcallan/finsilio/internal/models"
)

// LLMClient provides the language-model collaborators used by the pipeline.
// All methods make a single model call. Callers own the failure mapping:
// an error from any method never aborts a pipeline run.
type LLMClient interface {
	// ClassifyIntent decides whether the prompt asks for stock analysis.
	ClassifyIntent(ctx context.Context, prompt string) (models.Intent, error)

	// ExtractEntity pulls the most likely company name or ticker out of the
	// prompt. An empty string with a nil error means no entity was mentioned.
	ExtractEntity(ctx context.Context, prompt string) (string, error)

	// ResolveTicker maps a company entity to its official exchange symbol.
	// An empty string with a nil error means no ticker could be found.
	ResolveTicker(ctx context.Context, entity string) (string, error)

	// GenerateAnalysis produces the final analysis text for a ticker from
	// its market snapshot and recent headlines.
	GenerateAnalysis(ctx context.Context, ticker string, snapshot *models.MarketSnapshot, headlines []string) (string, error)
}

// MarketDataClient retrieves point-in-time market data for a ticker.
type MarketDataClient interface {
	// GetSnapshot fetches the current price and valuation fields.
	GetSnapshot(ctx context.Context, ticker string) (*models.MarketSnapshot, error)
}

// NewsClient retrieves recent news for a ticker.
type NewsClient interface {
	// GetNews returns up to limit recent articles, most recent first.
	GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error)
}

// MessengerClient delivers messages to a chat. Fire and forget: a failed
// send is logged by the caller and never retried.
type MessengerClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
