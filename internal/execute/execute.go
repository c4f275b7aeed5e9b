// Package execute runs translated queries. The local executor answers
// plain SQL from a relational backend and forecast requests by feeding
// the historical series to a forecaster; the client consumes the same
// contract from a remote service. Executors return the raw response
// payload: callers normalize it through the result package.
package execute

import (
	"context"
	"encoding/json"
	"strings"
)

// Request is one execution request on the wire.
type Request struct {
	Type      string `json:"type"`
	SQL       string `json:"sql"`
	Periods   int    `json:"periods,omitempty"`
	UsedModel bool   `json:"used_llm"`
}

const (
	// TypeSQL runs a plain relational query.
	TypeSQL = "sql"
	// TypeForecast runs the historical query and extends it.
	TypeForecast = "forecast"
)

// Executor runs a translated query and returns the raw result payload.
type Executor interface {
	Execute(ctx context.Context, req Request) (json.RawMessage, error)
}

// IsReadOnly reports whether the statement is a SELECT or WITH query.
// Everything else is rejected before touching the database.
func IsReadOnly(sqlText string) bool {
	normalized := strings.ToLower(strings.TrimSpace(sqlText))
	return strings.HasPrefix(normalized, "select") || strings.HasPrefix(normalized, "with")
}
