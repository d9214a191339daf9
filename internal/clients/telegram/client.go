// Package telegram provides a message dispatcher for the Telegram Bot API
package telegram

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/interfaces"
)

// Client implements the MessengerClient interface
type Client struct {
	bot        *tgbotapi.BotAPI
	endpoint   string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithEndpoint overrides the Bot API endpoint (used in tests)
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Telegram client. The token is validated against
// the Bot API during construction.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		endpoint:   tgbotapi.APIEndpoint,
		httpClient: &http.Client{},
		logger:     common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, c.endpoint, c.httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	c.bot = bot

	return c, nil
}

// SendMessage delivers text to a chat. The Bot API library does not take a
// context, so cancellation is only honored before the call starts.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}

	c.logger.Debug().Int64("chat_id", chatID).Int("length", len(text)).Msg("Message delivered")
	return nil
}

// Ensure Client implements MessengerClient
var _ interfaces.MessengerClient = (*Client)(nil)
