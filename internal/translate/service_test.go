package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type staticSchema string

func (s staticSchema) SchemaText(context.Context) (string, error) {
	return string(s), nil
}

func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
}

func TestServiceFallbackWithoutModel(t *testing.T) {
	svc := &Service{Schema: staticSchema("Orders: OrderID, OrderDate")}
	got, err := svc.Translate(context.Background(), "show me the top customers")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if got.Kind != KindPlain {
		t.Errorf("kind = %q, want plain", got.Kind)
	}
	if got.UsedModel {
		t.Error("used_llm must be false without a model")
	}
	if !strings.Contains(got.SQL, "Customers") {
		t.Errorf("sql = %q", got.SQL)
	}
}

func TestServiceForecastShapesSQL(t *testing.T) {
	server := chatServer(t, "```sql\nSELECT strftime('%Y-%m', OrderDate) AS month, COUNT(*) AS total FROM Orders GROUP BY month;\n```")
	defer server.Close()

	model, err := NewChatModel(ModelConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("model init failed: %v", err)
	}
	svc := &Service{Schema: staticSchema("Orders: OrderID, OrderDate"), Model: model}

	got, err := svc.Translate(context.Background(), "Forecast total orders for the next 6 months.")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if got.Kind != KindForecast {
		t.Fatalf("kind = %q, want forecast", got.Kind)
	}
	if got.Periods != 6 {
		t.Errorf("periods = %d, want 6", got.Periods)
	}
	if !got.UsedModel {
		t.Error("used_llm must be true when the model produced SQL")
	}
	if !strings.Contains(got.SQL, "AS date") || !strings.Contains(got.SQL, "AS value") {
		t.Errorf("forecast sql not shaped: %q", got.SQL)
	}
}

func TestServiceModelFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	model, err := NewChatModel(ModelConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("model init failed: %v", err)
	}
	svc := &Service{Schema: staticSchema(""), Model: model}

	got, err := svc.Translate(context.Background(), "list all customers")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if got.UsedModel {
		t.Error("used_llm must be false after a model failure")
	}
	if got.SQL == "" {
		t.Error("fallback SQL missing")
	}
	if _, ok := got.Debug["model_error"]; !ok {
		t.Errorf("debug = %v, want model_error entry", got.Debug)
	}
}

func TestServiceAmbiguousTieBreak(t *testing.T) {
	server := chatServer(t, "forecast")
	defer server.Close()

	model, err := NewChatModel(ModelConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("model init failed: %v", err)
	}
	svc := &Service{Schema: staticSchema(""), Model: model}

	got, err := svc.Translate(context.Background(), "revenue going to be higher?")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if got.Kind != KindForecast {
		t.Errorf("kind = %q, want forecast from tie-break", got.Kind)
	}
}
