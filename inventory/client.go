package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnreachable marks a transport-level failure talking to the
// inventory service.
var ErrUnreachable = errors.New("failed to connect to inventory service")

const maxResponseSizeBytes = 1 << 20

// StatusError carries a non-2xx inventory service response; the detail is
// the service's own message, preserved verbatim.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Inventory service returned an error: %s (HTTP %d)", e.Detail, e.StatusCode)
}

// ClientConfig configures the HTTP client for the inventory service.
type ClientConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Client is the gateway-side HTTP client for the inventory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("inventory base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid inventory base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNewClient(cfg ClientConfig) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Fetch retrieves the full current mapping via GET /inventory.
func (c *Client) Fetch(ctx context.Context) (map[string]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/inventory", nil)
	if err != nil {
		return nil, fmt.Errorf("build inventory request: %w", err)
	}
	return c.do(req)
}

// Update posts a signed change for one item via POST /inventory and
// returns the updated mapping. Validation failures come back as
// *StatusError with the service's detail untouched.
func (c *Client) Update(ctx context.Context, item string, change int) (map[string]int, error) {
	body, err := json.Marshal(UpdateRequest{Item: item, Change: &change})
	if err != nil {
		return nil, fmt.Errorf("marshal inventory update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inventory", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build inventory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (map[string]int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrUnreachable, c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrUnreachable, c.baseURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(raw),
		}
	}

	var state map[string]int
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode inventory response: %w", err)
	}
	return state, nil
}

func extractDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(raw))
}
