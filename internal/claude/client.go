// Package claude wraps the Anthropic completion endpoint behind the narrow
// surface the assistant needs: one system prompt, one user message, one text
// completion back.
//
// Failure taxonomy: authentication and rate-limit responses are mapped to
// the ErrAuthentication and ErrRateLimited sentinels so callers can show
// fixed user-facing messages; everything else propagates with its
// description. No call is retried automatically; the human retries.
package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/justentropy-lol/entropy-assistant/internal/log"
)

var (
	// ErrAuthentication indicates the API key was rejected.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited indicates the endpoint asked us to back off.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyCompletion indicates the endpoint answered without any text
	// content. Treated as a failure so callers never return a blank answer.
	ErrEmptyCompletion = errors.New("completion contained no text")
)

// Config configures a Client. APIKey, Model and MaxTokens are required.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int

	// BaseURL overrides the endpoint. Tests point this at an httptest server.
	BaseURL string

	Logger log.Logger
}

// Client calls the Anthropic messages endpoint.
type Client struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	logger    log.Logger
}

// New creates a completion client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude: API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("claude: model is required")
	}
	if cfg.MaxTokens < 1 {
		return nil, fmt.Errorf("claude: max tokens must be positive, got %d", cfg.MaxTokens)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Fail fast and report; retrying is the caller's decision.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		logger:    logger,
	}, nil
}

// Complete submits the system prompt plus one user message and returns the
// completion text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
	})
	if err != nil {
		return "", classifyError(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyCompletion
	}

	c.logger.Debug("completion received",
		"model", msg.Model,
		"input_tokens", msg.Usage.InputTokens,
		"output_tokens", msg.Usage.OutputTokens)

	return sb.String(), nil
}

// classifyError maps SDK errors onto the package sentinels. HTTP 401/403
// become ErrAuthentication, 429 becomes ErrRateLimited; anything else keeps
// its original description.
func classifyError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}
	return err
}
