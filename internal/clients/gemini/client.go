// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/interfaces"
	"github.com/bobmcallan/finsilio/internal/models"
)

const DefaultModel = "gemini-1.5-flash"

// noneSentinel is the token the prompts instruct the model to return when
// no entity or ticker exists.
const noneSentinel = "NONE"

// Client implements the LLMClient interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// generate runs one model call and returns the response text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// ClassifyIntent decides whether the prompt asks for stock analysis.
// Any response containing "STOCK" classifies as a stock request.
func (c *Client) ClassifyIntent(ctx context.Context, prompt string) (models.Intent, error) {
	text, err := c.generate(ctx, buildClassifyPrompt(prompt))
	if err != nil {
		return models.IntentOther, err
	}
	return normalizeIntent(text), nil
}

// ExtractEntity pulls the most likely company name or ticker out of the
// prompt. Returns "" when the model signals that none was mentioned.
func (c *Client) ExtractEntity(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, buildExtractPrompt(prompt))
	if err != nil {
		return "", err
	}
	return normalizeEntity(text), nil
}

// ResolveTicker maps a company entity to its official exchange symbol.
// Returns "" when the model cannot find one.
func (c *Client) ResolveTicker(ctx context.Context, entity string) (string, error) {
	text, err := c.generate(ctx, buildResolvePrompt(entity))
	if err != nil {
		return "", err
	}
	return normalizeTicker(text), nil
}

// GenerateAnalysis produces the final analysis text for a ticker.
func (c *Client) GenerateAnalysis(ctx context.Context, ticker string, snapshot *models.MarketSnapshot, headlines []string) (string, error) {
	prompt, err := buildAnalysisPrompt(ticker, snapshot, headlines)
	if err != nil {
		return "", err
	}
	return c.generate(ctx, prompt)
}

// --- prompt builders ---

func buildClassifyPrompt(userPrompt string) string {
	return fmt.Sprintf(`Is the following user prompt asking for financial analysis or data about a specific company or stock?
Answer ONLY with the word 'STOCK' or 'OTHER'.

User Prompt: %q`, userPrompt)
}

func buildExtractPrompt(userPrompt string) string {
	return fmt.Sprintf(`From the following user prompt, extract the single most likely company name or stock ticker.
Return ONLY the company name or stock ticker. If no specific company or ticker is mentioned, return 'NONE'.

User Prompt: %q`, userPrompt)
}

func buildResolvePrompt(entity string) string {
	return fmt.Sprintf(`What is the official stock ticker for the company '%s'?
Return ONLY the ticker symbol (e.g., GOOGL, AAPL).
If you cannot find a ticker, return 'NONE'.`, entity)
}

func buildAnalysisPrompt(ticker string, snapshot *models.MarketSnapshot, headlines []string) (string, error) {
	priceData := map[string]*float64{
		"last_price":     nil,
		"previous_close": nil,
		"day_high":       nil,
		"day_low":        nil,
		"52_week_high":   nil,
		"52_week_low":    nil,
		"market_cap":     nil,
	}
	if snapshot != nil {
		priceData["last_price"] = snapshot.LastPrice
		priceData["previous_close"] = snapshot.PreviousClose
		priceData["day_high"] = snapshot.DayHigh
		priceData["day_low"] = snapshot.DayLow
		priceData["52_week_high"] = snapshot.YearHigh
		priceData["52_week_low"] = snapshot.YearLow
		priceData["market_cap"] = snapshot.MarketCap
	}

	priceJSON, err := json.Marshal(priceData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal price data: %w", err)
	}

	if headlines == nil {
		headlines = []string{}
	}
	newsJSON, err := json.Marshal(headlines)
	if err != nil {
		return "", fmt.Errorf("failed to marshal headlines: %w", err)
	}

	return fmt.Sprintf(`You are a financial analyst for 'Finsilio'. Provide a concise, professional analysis for the stock: %s.

Use the following data to form your analysis. If data is missing or empty, state that you couldn't retrieve it.
- Price Data: %s
- Recent News Headlines: %s

Structure your response in Markdown with the following sections:
- A brief, one-paragraph **Summary** of the stock's current situation.
- Key **Data Points** in a bulleted list.
- A short **News Sentiment** section (Positive, Negative, or Neutral) based on the headlines.`,
		ticker, priceJSON, newsJSON), nil
}

// --- response normalization ---

func normalizeIntent(text string) models.Intent {
	if strings.Contains(strings.ToUpper(strings.TrimSpace(text)), "STOCK") {
		return models.IntentStock
	}
	return models.IntentOther
}

func normalizeEntity(text string) string {
	entity := strings.TrimSpace(text)
	if entity == "" || strings.Contains(strings.ToUpper(entity), noneSentinel) {
		return ""
	}
	return entity
}

func normalizeTicker(text string) string {
	ticker := strings.ToUpper(strings.TrimSpace(text))
	if ticker == "" || strings.Contains(ticker, noneSentinel) {
		return ""
	}
	return ticker
}

// Ensure Client implements LLMClient
var _ interfaces.LLMClient = (*Client)(nil)
