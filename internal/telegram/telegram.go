// Package telegram is a minimal Bot API client covering the two calls
// the pipeline needs: channel messages and polls.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client talks to the Bot API for one bot and one chat
type Client struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used in tests
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates a client. Token and chat id are both required; a missing
// credential is a configuration error, not something to retry around.
func New(token, chatID string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("telegram: bot token is required (set TELEGRAM_TOKEN)")
	}
	if chatID == "" {
		return nil, errors.New("telegram: chat id is required")
	}

	c := &Client{
		token:   token,
		chatID:  chatID,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SendMessage delivers an HTML-formatted message to the chat
func (c *Client) SendMessage(ctx context.Context, text string) error {
	return c.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
}

// SendPoll publishes an anonymous poll to the chat
func (c *Client) SendPoll(ctx context.Context, question string, options []string) error {
	if len(options) < 2 {
		return errors.New("telegram: a poll needs at least two options")
	}
	return c.call(ctx, "sendPoll", map[string]interface{}{
		"chat_id":      c.chatID,
		"question":     question,
		"options":      options,
		"is_anonymous": true,
	})
}

// apiResponse is the envelope every Bot API method returns
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *Client) call(ctx context.Context, method string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: marshal %s: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(data, &api); err != nil {
		return fmt.Errorf("telegram: %s returned status %d with unreadable body", method, resp.StatusCode)
	}
	if !api.OK {
		if api.Description != "" {
			return fmt.Errorf("telegram: %s failed: %s (code %d)", method, api.Description, api.ErrorCode)
		}
		return fmt.Errorf("telegram: %s failed with status %d", method, resp.StatusCode)
	}
	return nil
}
