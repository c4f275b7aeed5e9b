package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const sqlSystemPrompt = "You are a SQL assistant for a relational sales database.\n" +
	"Use EXACT table names from the provided schema. If a table name has spaces (e.g., Order Details), wrap it in double quotes.\n" +
	"Return ONLY the SQL query with no explanation.\n" +
	"\n" +
	"IMPORTANT FOR FORECASTING QUERIES:\n" +
	"- If the user asks for forecasting/prediction, return the HISTORICAL time-series needed for forecasting.\n" +
	"- The SQL must return exactly two columns: 'date' (period label) and 'value' (numeric).\n" +
	"- Use real period labels, not synthetic dates.\n" +
	"  * Yearly:   strftime('%Y', OrderDate)        AS date\n" +
	"  * Monthly:  strftime('%Y-%m', OrderDate)      AS date\n" +
	"  * Quarterly: build as 'YYYY-Qn' via CASE on strftime('%m', OrderDate) and alias AS date\n" +
	"- Value examples:\n" +
	"  * Sales:  SUM(od.Quantity * od.UnitPrice * (1 - od.Discount)) AS value\n" +
	"  * Orders: COUNT(*) AS value\n" +
	"- Do NOT perform the forecast in SQL; only provide [date, value].\n" +
	"- Quote table names with spaces, e.g., \"Order Details\".\n"

const classifySystemPrompt = "You are a query classifier. Analyze the user's question and determine if it is asking for a future prediction/forecast.\n" +
	"Respond with ONLY a single word: either 'plain' or 'forecast'."

// Service is the in-process Translator: keyword classification with an
// optional model tie-break, model-backed SQL generation with a canned
// fallback, and forecast column shaping.
type Service struct {
	Schema SchemaProvider
	Model  *ChatModel // nil disables model calls entirely
	Logger *slog.Logger
}

func (s *Service) Translate(ctx context.Context, question string) (Result, error) {
	kind := s.classify(ctx, question)

	out := Result{
		Kind:  kind,
		Debug: map[string]any{},
	}
	if kind == KindForecast {
		out.Periods = ExtractHorizon(question)
	}

	schemaText := ""
	if s.Schema != nil {
		text, err := s.Schema.SchemaText(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("load schema context: %w", err)
		}
		schemaText = text
	}

	if s.Model != nil {
		user := fmt.Sprintf("Schema:\n%s\n\nUser question: %s\nReturn ONLY SQL.", schemaText, question)
		reply, err := s.Model.Complete(ctx, sqlSystemPrompt, user)
		if err != nil {
			if s.Logger != nil {
				s.Logger.WarnContext(ctx, "sql generation failed, using fallback", slog.Any("error", err))
			}
			out.Debug["model_error"] = err.Error()
		} else {
			out.SQL = CleanSQL(reply)
			out.UsedModel = true
			out.Debug["note"] = "model used"
		}
	}
	if out.SQL == "" {
		out.SQL = FallbackSQL(question)
	}
	if kind == KindForecast {
		out.SQL = EnforceForecastColumns(out.SQL)
	}
	return out, nil
}

// classify runs the keyword heuristics and, when neither list matched
// and the phrasing is ambiguous, asks the model to break the tie.
func (s *Service) classify(ctx context.Context, question string) Kind {
	if ClearMatch(question) || s.Model == nil || !IsAmbiguous(question) {
		return Classify(question)
	}
	reply, err := s.Model.Complete(ctx, classifySystemPrompt, "Question: "+question)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WarnContext(ctx, "model classification failed, defaulting to plain", slog.Any("error", err))
		}
		return KindPlain
	}
	switch Kind(strings.ToLower(strings.TrimSpace(reply))) {
	case KindForecast:
		return KindForecast
	default:
		return KindPlain
	}
}
