package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/querydeck/querydeck/internal/execute"
)

func handleRunSQL(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Executor == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "EXECUTOR_NOT_CONFIGURED", "query execution is not configured", false, nil)
		return
	}

	var req execute.Request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid execution request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(req.SQL) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "SQL_REQUIRED", "sql is required", false, nil)
		return
	}
	if req.Type == "" {
		req.Type = execute.TypeSQL
	}

	payload, err := deps.Executor.Execute(r.Context(), req)
	if err != nil {
		var notAllowed *execute.ErrSQLNotAllowed
		if errors.As(err, &notAllowed) {
			writeError(r.Context(), w, http.StatusBadRequest, "SQL_NOT_ALLOWED", err.Error(), false, nil)
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "EXECUTION_FAILED", "failed to execute query", true, map[string]any{"details": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
