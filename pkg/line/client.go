// Package line is a minimal client for the LINE Messaging API push endpoint.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/sangkips/order-notifier/pkg/flex"
)

const (
	// DefaultBaseURL is the production Messaging API host.
	DefaultBaseURL = "https://api.line.me"

	pushPath = "/v2/bot/message/push"

	// error bodies from the API are small JSON objects
	maxErrorBody = 64 << 10
)

// Message is a single entry of a push request.
type Message struct {
	Type     string       `json:"type"`
	AltText  string       `json:"altText"`
	Contents *flex.Bubble `json:"contents"`
}

// PushMessage is the push envelope sent to the API.
type PushMessage struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// NewFlexMessage wraps a bubble as a flex message with the given alt text.
func NewFlexMessage(altText string, bubble *flex.Bubble) Message {
	return Message{Type: "flex", AltText: altText, Contents: bubble}
}

// Pusher delivers a push envelope to its destination.
type Pusher interface {
	Push(ctx context.Context, msg PushMessage) error
}

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("LINE push error %d", e.StatusCode)
}

// Config holds client settings.
type Config struct {
	BaseURL string
	Token   string
	// Timeout of zero leaves the request bounded only by its context.
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client pushes messages over HTTPS with bearer token authorization.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Messaging API client.
func NewClient(cfg Config) *Client {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
				Base:   otelhttp.NewTransport(base),
			},
		},
	}
}

// Push sends msg in a single attempt.
func (c *Client) Push(ctx context.Context, msg PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("line: failed to encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pushPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("line: failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("line: push request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// LogPusher writes push envelopes to the logger instead of the network.
type LogPusher struct {
	logger *slog.Logger
}

// NewLogPusher creates a dry-run pusher.
func NewLogPusher(logger *slog.Logger) *LogPusher {
	return &LogPusher{logger: logger}
}

// Push logs msg and always succeeds.
func (p *LogPusher) Push(_ context.Context, msg PushMessage) error {
	if p == nil || p.logger == nil {
		return nil
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("line: failed to encode push message: %w", err)
	}
	p.logger.Info("line push (dry run)",
		"to", msg.To,
		"messages", len(msg.Messages),
		"text", messageText(msg),
		"payload", string(payload),
	)
	return nil
}

// messageText flattens every Flex text node into lines so dry-run logs read
// like the receipt.
func messageText(msg PushMessage) string {
	var lines []string
	for _, m := range msg.Messages {
		if m.Contents == nil || m.Contents.Body == nil {
			continue
		}
		for _, t := range flex.Texts(m.Contents.Body) {
			lines = append(lines, t.Text)
		}
	}
	return strings.Join(lines, "\n")
}
