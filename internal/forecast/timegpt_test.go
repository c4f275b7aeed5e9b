package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTimeGPTClientForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		var req struct {
			Series []map[string]any `json:"series"`
			H      int              `json:"h"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Series) != 3 || req.H != 2 {
			t.Errorf("series=%d h=%d", len(req.Series), req.H)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"forecast": []map[string]any{
				{"ds": "2024-04", "TimeGPT": 140.0},
				{"ds": "2024-05", "TimeGPT": 150.0},
			},
		})
	}))
	defer server.Close()

	client, err := NewTimeGPTClient(TimeGPTConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}
	points, err := client.Forecast(context.Background(), monthly(100, 110, 120), 2)
	if err != nil {
		t.Fatalf("forecast failed: %v", err)
	}
	if len(points) != 2 || points[0].Date != "2024-04" || points[1].Value != 150 {
		t.Fatalf("points = %v", points)
	}
}

func TestTimeGPTClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer server.Close()

	client, err := NewTimeGPTClient(TimeGPTConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}
	if _, err := client.Forecast(context.Background(), monthly(1, 2, 3), 2); err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}

func TestTimeGPTClientRequiresCredentials(t *testing.T) {
	if _, err := NewTimeGPTClient(TimeGPTConfig{BaseURL: "http://localhost"}); err == nil {
		t.Fatal("expected an error for a missing api key")
	}
}
