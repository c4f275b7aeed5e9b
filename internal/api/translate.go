package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/querydeck/querydeck/internal/observability"
)

type translateRequest struct {
	Query string `json:"query"`
}

func handleTranslate(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Translator == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "TRANSLATE_NOT_CONFIGURED", "query translation is not configured", false, nil)
		return
	}
	if deps.TranslateLimiter != nil && !deps.TranslateLimiter.Allow() {
		writeError(r.Context(), w, http.StatusTooManyRequests, "RATE_LIMITED", "too many translation requests", true, nil)
		return
	}

	var req translateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid translation request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_REQUIRED", "query is required", false, nil)
		return
	}

	start := time.Now()
	result, err := deps.Translator.Translate(r.Context(), req.Query)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadGateway, "TRANSLATE_FAILED", "failed to translate question", true, map[string]any{"details": err.Error()})
		return
	}
	observability.IncrementTranslation(string(result.Kind))
	observability.ObserveTranslateDuration(time.Since(start).Seconds())

	if deps.Logger != nil {
		deps.Logger.DebugContext(r.Context(), "question translated",
			slog.String("trace_id", observability.TraceIDFromContext(r.Context())),
			slog.String("type", string(result.Kind)),
			slog.Bool("used_llm", result.UsedModel),
		)
	}
	writeJSON(w, http.StatusOK, result)
}
