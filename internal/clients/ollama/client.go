// Package ollama implements the narrative generator over a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is used when no endpoint is configured
const DefaultEndpoint = "http://localhost:11434"

// DefaultTemperature keeps explanations close to the supplied data
const DefaultTemperature = 0.3

// thinkBlock matches reasoning blocks emitted by thinking models
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Client calls the Ollama /api/generate endpoint
type Client struct {
	endpoint    string
	model       string
	temperature float64
	client      *http.Client
	limiter     *rate.Limiter
	log         zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.client = c
	}
}

// WithRateLimit sets the minimum interval between requests
func WithRateLimit(every time.Duration) Option {
	return func(client *Client) {
		client.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
}

// NewClient creates a client for the given endpoint and model
func NewClient(endpoint, model string, log zerolog.Logger, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := &Client{
		endpoint:    strings.TrimRight(endpoint, "/"),
		model:       model,
		temperature: DefaultTemperature,
		client:      &http.Client{Timeout: 2 * time.Minute},
		limiter:     rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		log:         log.With().Str("client", "ollama").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the backing model
func (c *Client) Name() string {
	return fmt.Sprintf("ollama/%s", c.model)
}

// Available pings the server's tag list
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate sends prompt to the model and returns its text response
// with any <think> blocks removed.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: map[string]any{"temperature": c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse response failed: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("ollama error: %s", result.Error)
	}

	c.log.Debug().
		Str("model", c.model).
		Dur("duration", time.Since(start)).
		Int("response_len", len(result.Response)).
		Msg("Generated narrative")

	return StripThinking(result.Response), nil
}

// StripThinking removes <think>...</think> blocks and surrounding whitespace
func StripThinking(text string) string {
	return strings.TrimSpace(thinkBlock.ReplaceAllString(text, ""))
}
