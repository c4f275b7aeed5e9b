// Package translate classifies a natural-language question and turns
// it into an executable query: either plain SQL or the historical
// series query behind a time-series forecast.
package translate

import "context"

// Kind is the query classification.
type Kind string

const (
	KindPlain    Kind = "plain"
	KindForecast Kind = "forecast"
)

// Result is the outcome of one translation.
type Result struct {
	Kind      Kind           `json:"type"`
	SQL       string         `json:"sql"`
	Periods   int            `json:"periods,omitempty"`
	UsedModel bool           `json:"used_llm"`
	Debug     map[string]any `json:"debug"`
}

// Translator converts a question into a classified, executable query.
type Translator interface {
	Translate(ctx context.Context, question string) (Result, error)
}

// SchemaProvider supplies the schema description handed to the language
// model as prompt context.
type SchemaProvider interface {
	SchemaText(ctx context.Context) (string, error)
}
