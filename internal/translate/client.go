package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the HTTP consumer of a remote translate endpoint speaking
// the same contract the api package serves.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// APIKey is sent as X-API-Key when set.
	APIKey string
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Translate(ctx context.Context, question string) (Result, error) {
	body, err := json.Marshal(map[string]string{"query": question})
	if err != nil {
		return Result{}, fmt.Errorf("marshal translate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/translate", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build translate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("request translation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read translate response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("translate failed status=%d", resp.StatusCode)
	}

	var decoded struct {
		Type    string         `json:"type"`
		SQL     *string        `json:"sql"`
		Periods int            `json:"periods"`
		UsedLLM bool           `json:"used_llm"`
		Debug   map[string]any `json:"debug"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Result{}, fmt.Errorf("decode translate response: %w", err)
	}

	out := Result{
		Kind:      KindPlain,
		Periods:   decoded.Periods,
		UsedModel: decoded.UsedLLM,
		Debug:     decoded.Debug,
	}
	if decoded.Type != "" {
		out.Kind = Kind(decoded.Type)
	}
	if decoded.SQL != nil {
		out.SQL = *decoded.SQL
	}
	if out.Debug == nil {
		out.Debug = map[string]any{}
	}
	return out, nil
}
