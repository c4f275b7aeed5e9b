package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaultsForDevProfile(t *testing.T) {
	lookup := mapLookup(map[string]string{})
	cfg, err := Load("querydeck-api", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileDev {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileDev)
	}
	if cfg.HTTP.Address != ":8080" {
		t.Fatalf("HTTP.Address = %q", cfg.HTTP.Address)
	}
	if cfg.Observability.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if cfg.Auth.Required {
		t.Fatal("Auth.Required should default to false in dev")
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Fatalf("Database.Driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "./northwind.db" {
		t.Fatalf("Database.DSN = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Fatalf("Database.MaxOpenConns = %d", cfg.Database.MaxOpenConns)
	}
	if cfg.AI.TranslateEnabled {
		t.Fatal("AI.TranslateEnabled should default to false")
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("AI.Model = %q", cfg.AI.Model)
	}
	if cfg.RateLimit.TranslatePerSecond != 5 {
		t.Fatalf("RateLimit.TranslatePerSecond = %f", cfg.RateLimit.TranslatePerSecond)
	}
	if cfg.RateLimit.TranslateBurst != 10 {
		t.Fatalf("RateLimit.TranslateBurst = %d", cfg.RateLimit.TranslateBurst)
	}
	if cfg.Client.BaseURL != "http://localhost:8080" {
		t.Fatalf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
}

func TestLoadProdProfileDefaults(t *testing.T) {
	lookup := mapLookup(map[string]string{"QUERYDECK_PROFILE": "prod"})
	cfg, err := Load("querydeck-api", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileProd {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileProd)
	}
	if !cfg.Auth.Required {
		t.Fatal("Auth.Required should default to true in prod")
	}
	if cfg.Observability.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"QUERYDECK_PROFILE":                        "test",
		"QUERYDECK_SERVICE_NAME":                   "querydeck-custom",
		"QUERYDECK_HTTP_ADDR":                      ":9999",
		"QUERYDECK_HTTP_READ_TIMEOUT":              "2s",
		"QUERYDECK_HTTP_WRITE_TIMEOUT":             "3s",
		"QUERYDECK_DB_DRIVER":                      "duckdb",
		"QUERYDECK_DB_DSN":                         "analytics.duckdb",
		"QUERYDECK_DB_MAX_OPEN_CONNS":              "42",
		"QUERYDECK_DB_MAX_IDLE_CONNS":              "17",
		"QUERYDECK_AI_TRANSLATE_ENABLED":           "true",
		"QUERYDECK_AI_BASE_URL":                    "https://api.example.com",
		"QUERYDECK_AI_API_KEY":                     "secret-key",
		"QUERYDECK_AI_MODEL":                       "gpt-4.1",
		"QUERYDECK_AI_TEMPERATURE":                 "0.3",
		"QUERYDECK_AI_TIMEOUT":                     "21s",
		"QUERYDECK_FORECAST_BASE_URL":              "https://forecast.example.com",
		"QUERYDECK_FORECAST_API_KEY":               "fc-key",
		"QUERYDECK_FORECAST_TIMEOUT":               "45s",
		"QUERYDECK_CLIENT_BASE_URL":                "http://10.0.0.5:8080",
		"QUERYDECK_CLIENT_API_KEY":                 "client-key",
		"QUERYDECK_CLIENT_TIMEOUT":                 "90s",
		"QUERYDECK_RATELIMIT_TRANSLATE_PER_SECOND": "2.5",
		"QUERYDECK_RATELIMIT_TRANSLATE_BURST":      "4",
		"QUERYDECK_LOG_LEVEL":                      "error",
		"QUERYDECK_AUTH_REQUIRED":                  "true",
		"QUERYDECK_AUTH_STATIC_KEYS":               "k1:analyst-1:query_runner",
	})
	cfg, err := Load("querydeck-api", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Name != "querydeck-custom" {
		t.Fatalf("Service.Name = %q", cfg.Service.Name)
	}
	if cfg.HTTP.Address != ":9999" {
		t.Fatalf("HTTP.Address = %q", cfg.HTTP.Address)
	}
	if cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Fatalf("HTTP.ReadTimeout = %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.WriteTimeout != 3*time.Second {
		t.Fatalf("HTTP.WriteTimeout = %s", cfg.HTTP.WriteTimeout)
	}
	if cfg.Database.Driver != "duckdb" {
		t.Fatalf("Database.Driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "analytics.duckdb" {
		t.Fatalf("Database.DSN = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxOpenConns != 42 {
		t.Fatalf("Database.MaxOpenConns = %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 17 {
		t.Fatalf("Database.MaxIdleConns = %d", cfg.Database.MaxIdleConns)
	}
	if !cfg.AI.TranslateEnabled {
		t.Fatal("AI.TranslateEnabled = false, want true")
	}
	if cfg.AI.BaseURL != "https://api.example.com" {
		t.Fatalf("AI.BaseURL = %q", cfg.AI.BaseURL)
	}
	if cfg.AI.APIKey != "secret-key" {
		t.Fatalf("AI.APIKey = %q", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "gpt-4.1" {
		t.Fatalf("AI.Model = %q", cfg.AI.Model)
	}
	if cfg.AI.Temperature != 0.3 {
		t.Fatalf("AI.Temperature = %f", cfg.AI.Temperature)
	}
	if cfg.AI.Timeout != 21*time.Second {
		t.Fatalf("AI.Timeout = %s", cfg.AI.Timeout)
	}
	if cfg.Forecast.BaseURL != "https://forecast.example.com" {
		t.Fatalf("Forecast.BaseURL = %q", cfg.Forecast.BaseURL)
	}
	if cfg.Forecast.APIKey != "fc-key" {
		t.Fatalf("Forecast.APIKey = %q", cfg.Forecast.APIKey)
	}
	if cfg.Forecast.Timeout != 45*time.Second {
		t.Fatalf("Forecast.Timeout = %s", cfg.Forecast.Timeout)
	}
	if cfg.Client.BaseURL != "http://10.0.0.5:8080" {
		t.Fatalf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.APIKey != "client-key" {
		t.Fatalf("Client.APIKey = %q", cfg.Client.APIKey)
	}
	if cfg.Client.Timeout != 90*time.Second {
		t.Fatalf("Client.Timeout = %s", cfg.Client.Timeout)
	}
	if cfg.RateLimit.TranslatePerSecond != 2.5 {
		t.Fatalf("RateLimit.TranslatePerSecond = %f", cfg.RateLimit.TranslatePerSecond)
	}
	if cfg.RateLimit.TranslateBurst != 4 {
		t.Fatalf("RateLimit.TranslateBurst = %d", cfg.RateLimit.TranslateBurst)
	}
	if cfg.Observability.LogLevel != slog.LevelError {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if !cfg.Auth.Required {
		t.Fatal("Auth.Required = false, want true")
	}
	if cfg.Auth.StaticKeys != "k1:analyst-1:query_runner" {
		t.Fatalf("StaticKeys = %q", cfg.Auth.StaticKeys)
	}
}

func TestLoadErrorsOnInvalidValues(t *testing.T) {
	tests := []map[string]string{
		{"QUERYDECK_PROFILE": "oops"},
		{"QUERYDECK_HTTP_READ_TIMEOUT": "NaN"},
		{"QUERYDECK_DB_MAX_OPEN_CONNS": "oops"},
		{"QUERYDECK_RATELIMIT_TRANSLATE_BURST": "oops"},
		{"QUERYDECK_RATELIMIT_TRANSLATE_PER_SECOND": "bad"},
		{"QUERYDECK_AI_TEMPERATURE": "bad"},
		{"QUERYDECK_AUTH_REQUIRED": "not-bool"},
		{"QUERYDECK_LOG_LEVEL": "verbose"},
	}
	for _, env := range tests {
		_, err := Load("querydeck-api", mapLookup(env))
		if err == nil {
			t.Fatalf("Load() expected error for env %#v", env)
		}
	}
}

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
