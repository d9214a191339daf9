// Package finnhub provides a news client backed by the Finnhub API
package finnhub

import (
	"context"
	"time"

	finnhubapi "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/interfaces"
	"github.com/bobmcallan/finsilio/internal/models"
)

// DefaultLookback is how far back company news is requested.
const DefaultLookback = 7 * 24 * time.Hour

// Client implements the NewsClient interface using Finnhub company news
type Client struct {
	api      *finnhubapi.DefaultApiService
	lookback time.Duration
	logger   *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLookback sets how far back company news is requested
func WithLookback(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.lookback = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Finnhub news client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	cfg := finnhubapi.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)

	c := &Client{
		api:      finnhubapi.NewAPIClient(cfg).DefaultApi,
		lookback: DefaultLookback,
		logger:   common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetNews retrieves recent company news for a ticker, most recent first.
func (c *Client) GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error) {
	now := time.Now()
	from := now.Add(-c.lookback)

	c.logger.Debug().Str("ticker", ticker).Msg("Finnhub company news request")

	articles, _, err := c.api.CompanyNews(ctx).
		Symbol(ticker).
		From(from.Format("2006-01-02")).
		To(now.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, err
	}

	return mapArticles(articles, limit), nil
}

// mapArticles converts Finnhub company news into news items, dropping
// articles without a headline and stopping at limit.
func mapArticles(articles []finnhubapi.CompanyNews, limit int) []*models.NewsItem {
	news := make([]*models.NewsItem, 0, limit)
	for _, item := range articles {
		if len(news) >= limit {
			break
		}

		n := &models.NewsItem{}

		if item.Headline != nil {
			n.Title = *item.Headline
		}
		if n.Title == "" {
			continue
		}

		if item.Url != nil {
			n.URL = *item.Url
		}
		if item.Source != nil {
			n.Source = *item.Source
		}
		if item.Datetime != nil {
			n.PublishedAt = time.Unix(*item.Datetime, 0)
		}

		news = append(news, n)
	}

	return news
}

// Ensure Client implements NewsClient
var _ interfaces.NewsClient = (*Client)(nil)
