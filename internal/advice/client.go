// Package advice turns a user's transaction history into short
// personalized savings and budgeting recommendations by calling an
// external messages API.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"findash/internal/config"
	"findash/internal/core"
)

const systemPrompt = "You are a personal finance advisor. Analyze the following transactions and provide personalized recommendations for saving and budgeting. Be concise. Do not mention that you are an AI. Do not include any introductory or concluding remarks."

var (
	// ErrUnavailable is what callers see when the upstream call fails for
	// any reason. The underlying cause is logged, never surfaced.
	ErrUnavailable = errors.New("advice service unavailable")

	ErrNoTransactions = errors.New("no transactions to analyze")
	ErrMissingAPIKey  = errors.New("advice API key not configured")
)

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type Client struct {
	apiURL     string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiURL:     cfg.AdviceAPIURL,
		apiKey:     cfg.AdviceAPIKey,
		model:      cfg.AdviceModel,
		maxTokens:  cfg.AdviceMaxTokens,
		httpClient: &http.Client{Timeout: cfg.AdviceTimeout},
		logger:     logger,
	}
}

// Analyze sends the transaction history upstream and returns the
// recommendation text. Transient failures (network errors, 429 and 5xx
// responses) are retried with fibonacci backoff before giving up.
func (c *Client) Analyze(ctx context.Context, transactions []core.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", ErrNoTransactions
	}
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	txJSON, err := json.Marshal(transactions)
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}

	body := request{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: fmt.Sprintf("Transactions: %s", txJSON)},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var text string
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var attemptErr error
		text, attemptErr = c.call(ctx, payload)
		return attemptErr
	})
	if err != nil {
		c.logger.Error("Advice request failed", "error", err)
		return "", ErrUnavailable
	}
	return text, nil
}

func (c *Client) call(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", retry.RetryableError(fmt.Errorf("API returned status %d: %s", resp.StatusCode, raw))
	default:
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, raw)
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("empty response content")
	}

	c.logger.Debug("Advice request completed",
		"model", parsed.Model,
		"input_tokens", parsed.Usage.InputTokens,
		"output_tokens", parsed.Usage.OutputTokens)

	return parsed.Content[0].Text, nil
}
