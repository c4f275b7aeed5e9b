package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/querydeck/querydeck/internal/translate"
)

func TestTranslateReturnsClassifiedQuery(t *testing.T) {
	handler := NewHandler(testConfig(t), Dependencies{
		Translator: stubTranslator{result: translate.Result{
			Kind:      translate.KindForecast,
			SQL:       "SELECT date, value FROM orders",
			Periods:   6,
			UsedModel: true,
			Debug:     map[string]any{"note": "model used"},
		}},
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"query":"forecast revenue next 6 months"}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Type    string `json:"type"`
		SQL     string `json:"sql"`
		Periods int    `json:"periods"`
		UsedLLM bool   `json:"used_llm"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Type != "forecast" || body.Periods != 6 || !body.UsedLLM {
		t.Fatalf("body = %+v", body)
	}
	if body.SQL == "" {
		t.Fatal("expected sql in response")
	}
}

func TestTranslateRejectsEmptyQuestion(t *testing.T) {
	handler := NewHandler(testConfig(t), Dependencies{
		Translator: stubTranslator{result: translate.Result{Kind: translate.KindPlain}},
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"query":"  "}`)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error_code"] != "QUERY_REQUIRED" {
		t.Fatalf("error_code = %v", body["error_code"])
	}
}

func TestTranslateRejectsInvalidJSON(t *testing.T) {
	handler := NewHandler(testConfig(t), Dependencies{
		Translator: stubTranslator{result: translate.Result{Kind: translate.KindPlain}},
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"query":`)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestTranslateFailureIsBadGateway(t *testing.T) {
	handler := NewHandler(testConfig(t), Dependencies{
		Translator: stubTranslator{err: errors.New("schema unavailable")},
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"query":"top customers"}`)))

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error_code"] != "TRANSLATE_FAILED" {
		t.Fatalf("error_code = %v", body["error_code"])
	}
}

func TestTranslateNotConfigured(t *testing.T) {
	handler := NewHandler(testConfig(t), Dependencies{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"query":"hi"}`)))

	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d", rr.Code)
	}
}
