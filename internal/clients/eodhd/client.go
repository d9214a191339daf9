// Package eodhd provides a client for the EODHD API
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/interfaces"
	"github.com/bobmcallan/finsilio/internal/models"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
// EODHD returns "NA" for fields it has no data for.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "NA" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// ptr returns a pointer to the value, or nil when the API signalled no data.
func (f flexFloat64) ptr() *float64 {
	if f == 0 {
		return nil
	}
	v := float64(f)
	return &v
}

// Client implements the MarketDataClient and NewsClient interfaces
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new EODHD client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	// Add API key
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// realTimeResponse represents the /real-time API response
type realTimeResponse struct {
	Code          string      `json:"code"`
	Timestamp     int64       `json:"timestamp"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         flexFloat64 `json:"close"`
	PreviousClose flexFloat64 `json:"previousClose"`
	Change        flexFloat64 `json:"change"`
	ChangePct     flexFloat64 `json:"change_p"`
}

// highlightsResponse carries the subset of /fundamentals used for snapshots
type highlightsResponse struct {
	Highlights struct {
		MarketCapitalization flexFloat64 `json:"MarketCapitalization"`
		WeekHigh52           flexFloat64 `json:"52WeekHigh"`
		WeekLow52            flexFloat64 `json:"52WeekLow"`
	} `json:"Highlights"`
	Technicals struct {
		WeekHigh52 flexFloat64 `json:"52WeekHigh"`
		WeekLow52  flexFloat64 `json:"52WeekLow"`
	} `json:"Technicals"`
}

// GetSnapshot fetches the current price and valuation fields for a ticker.
// The real-time quote supplies the intraday fields; a fundamentals lookup
// supplies 52-week range and market cap. A failed fundamentals call degrades
// the snapshot rather than failing it — the quote alone is usable.
func (c *Client) GetSnapshot(ctx context.Context, ticker string) (*models.MarketSnapshot, error) {
	path := fmt.Sprintf("/real-time/%s", ticker)

	var quote realTimeResponse
	if err := c.get(ctx, path, nil, &quote); err != nil {
		return nil, err
	}

	snapshot := &models.MarketSnapshot{
		Ticker:        ticker,
		LastPrice:     quote.Close.ptr(),
		PreviousClose: quote.PreviousClose.ptr(),
		DayHigh:       quote.High.ptr(),
		DayLow:        quote.Low.ptr(),
		FetchedAt:     time.Now(),
	}

	var fundamentals highlightsResponse
	if err := c.get(ctx, fmt.Sprintf("/fundamentals/%s", ticker), nil, &fundamentals); err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("Fundamentals lookup failed, snapshot limited to quote fields")
		return snapshot, nil
	}

	snapshot.MarketCap = fundamentals.Highlights.MarketCapitalization.ptr()
	snapshot.YearHigh = fundamentals.Technicals.WeekHigh52.ptr()
	snapshot.YearLow = fundamentals.Technicals.WeekLow52.ptr()
	if snapshot.YearHigh == nil {
		snapshot.YearHigh = fundamentals.Highlights.WeekHigh52.ptr()
	}
	if snapshot.YearLow == nil {
		snapshot.YearLow = fundamentals.Highlights.WeekLow52.ptr()
	}

	return snapshot, nil
}

type newsSentiment struct {
	Polarity float64 `json:"polarity"`
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
}

func (s newsSentiment) classify() string {
	if s.Polarity > 0.5 {
		return "positive"
	} else if s.Polarity < -0.5 {
		return "negative"
	}
	return "neutral"
}

type newsResponse struct {
	Date      string        `json:"date"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Link      string        `json:"link"`
	Source    string        `json:"source"`
	Sentiment newsSentiment `json:"sentiment"`
}

// GetNews retrieves news for a ticker
func (c *Client) GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error) {
	path := "/news"

	params := url.Values{}
	params.Set("s", ticker)
	params.Set("limit", strconv.Itoa(limit))

	var newsResp []newsResponse
	if err := c.get(ctx, path, params, &newsResp); err != nil {
		return nil, err
	}

	news := make([]*models.NewsItem, len(newsResp))
	for i, item := range newsResp {
		publishedAt, _ := time.Parse("2006-01-02T15:04:05+00:00", item.Date)
		news[i] = &models.NewsItem{
			Title:       item.Title,
			URL:         item.Link,
			Source:      item.Source,
			PublishedAt: publishedAt,
			Sentiment:   item.Sentiment.classify(),
		}
	}

	return news, nil
}

// Ensure Client implements the collaborator interfaces
var (
	_ interfaces.MarketDataClient = (*Client)(nil)
	_ interfaces.NewsClient       = (*Client)(nil)
)
