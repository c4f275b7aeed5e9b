package forecast

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

// TimeGPTConfig configures the hosted forecasting client.
type TimeGPTConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// TimeGPTClient calls a hosted TimeGPT-style forecasting API. The wire
// format uses ds for period labels: historical rows go out as {ds, y}
// and predictions come back as {ds, TimeGPT}.
type TimeGPTClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewTimeGPTClient(cfg TimeGPTConfig) (*TimeGPTClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TimeGPTClient{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *TimeGPTClient) Forecast(ctx context.Context, historical []Point, horizon int) ([]Point, error) {
	if len(historical) < minObservations {
		return nil, fmt.Errorf("not enough data points for forecasting: have %d, need %d", len(historical), minObservations)
	}

	series := make([]map[string]any, 0, len(historical))
	for _, p := range historical {
		series = append(series, map[string]any{"ds": p.Date, "y": p.Value})
	}
	body, err := json.Marshal(map[string]any{"series": series, "h": horizon})
	if err != nil {
		return nil, fmt.Errorf("marshal forecast payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forecast", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request forecast: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read forecast response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("forecast failed status=%d body=%s", resp.StatusCode, string(raw))
	}

	var decoded struct {
		Forecast []struct {
			DS      string  `json:"ds"`
			TimeGPT float64 `json:"TimeGPT"`
		} `json:"forecast"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	if len(decoded.Forecast) == 0 {
		return nil, fmt.Errorf("empty forecast response")
	}

	points := make([]Point, 0, len(decoded.Forecast))
	for _, row := range decoded.Forecast {
		points = append(points, Point{Date: row.DS, Value: row.TimeGPT})
	}
	return points, nil
}
