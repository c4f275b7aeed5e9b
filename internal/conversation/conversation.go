// Package conversation drives the question/answer cycle of one chat
// session: submit a question, translate it, execute the resulting
// query, normalize and project the payload, and append the rendered
// outcome to the transcript. The transcript is in-memory only and is
// appended to from a single event loop; Begin and Finish run on that
// loop while Resolve is free of shared state and may run elsewhere.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/querydeck/querydeck/internal/chart"
	"github.com/querydeck/querydeck/internal/execute"
	"github.com/querydeck/querydeck/internal/result"
	"github.com/querydeck/querydeck/internal/translate"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

type State string

const (
	StateIdle        State = "idle"
	StateSubmitting  State = "submitting"
	StateTranslating State = "translating"
	StateExecuting   State = "executing"
	StateRendering   State = "rendering"
	StateErrored     State = "errored"
)

const genericErrorMessage = "Something went wrong. Please try again."

// Entry is one transcript item: a user question, a rendered result, or
// an error message.
type Entry struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	Err       string
	Result    *Rendered
	Timestamp time.Time
}

// Rendered is the display state of one answered question. View toggles
// (raw payload, chart kind) belong to the entry that owns it, never to
// the conversation.
type Rendered struct {
	Kind       translate.Kind
	Raw        json.RawMessage
	Table      result.Tabular
	Historical result.Tabular
	Predicted  result.Tabular
	Series     result.TimeSeries
	Points     []chart.SeriesPoint
	FieldNames []string
	XKey       string
	ChartKind  chart.Kind
	ShowRaw    bool
}

// HasChart reports whether the projection yielded anything chartable.
func (r *Rendered) HasChart() bool {
	return len(r.Points) > 0
}

// Spec builds the chart configuration for the current chart kind.
func (r *Rendered) Spec() chart.Spec {
	if r.ChartKind == chart.KindPie {
		if r.Kind == translate.KindForecast {
			return chart.BuildPieSpec(r.Historical)
		}
		return chart.BuildPieSpec(r.Table)
	}
	return chart.BuildSpec(r.Points, r.ChartKind, r.XKey, r.FieldNames)
}

// CycleChart advances to the next selectable chart kind.
func (r *Rendered) CycleChart() {
	for i, kind := range chart.Kinds {
		if kind == r.ChartKind {
			r.ChartKind = chart.Kinds[(i+1)%len(chart.Kinds)]
			return
		}
	}
	r.ChartKind = chart.Kinds[0]
}

// ToggleRaw flips between the rendered view and the raw payload view.
func (r *Rendered) ToggleRaw() {
	r.ShowRaw = !r.ShowRaw
}

var (
	// ErrBusy rejects a submission while another question is in flight.
	ErrBusy = errors.New("a question is already in flight")
	// ErrEmptyQuestion rejects a blank submission. Callers treat it as
	// a no-op rather than an error to surface.
	ErrEmptyQuestion = errors.New("question is empty")
)

// Conversation owns one transcript and serializes submissions on it.
type Conversation struct {
	translator translate.Translator
	executor   execute.Executor
	logger     *slog.Logger
	state      State
	entries    []Entry
}

func New(translator translate.Translator, executor execute.Executor, logger *slog.Logger) *Conversation {
	return &Conversation{
		translator: translator,
		executor:   executor,
		logger:     logger,
		state:      StateIdle,
	}
}

func (c *Conversation) State() State { return c.state }

func (c *Conversation) Busy() bool {
	return c.state != StateIdle
}

func (c *Conversation) Entries() []Entry { return c.entries }

// LastResult returns the most recent rendered result, for view toggles
// that act on the latest answer.
func (c *Conversation) LastResult() *Rendered {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Result != nil {
			return c.entries[i].Result
		}
	}
	return nil
}

// Begin validates and records a submission. It appends the user entry
// before any network call so the question shows up immediately.
func (c *Conversation) Begin(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	if c.Busy() {
		return ErrBusy
	}
	c.state = StateSubmitting
	c.entries = append(c.entries, Entry{
		ID:        uuid.New(),
		Role:      RoleUser,
		Text:      question,
		Timestamp: time.Now(),
	})
	c.state = StateTranslating
	return nil
}

// Resolve runs the translate/execute/render pipeline for one question.
// It touches no conversation state, so it is safe to call from a
// worker while the event loop keeps running; hand the returned entry
// to Finish. A nil entry means nothing to append.
func (c *Conversation) Resolve(ctx context.Context, question string) *Entry {
	translated, err := c.translator.Translate(ctx, question)
	if err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "translation failed", slog.String("error", err.Error()))
		}
		return errorEntry(err)
	}

	if translated.Kind != translate.KindForecast && strings.TrimSpace(translated.SQL) == "" {
		return nil
	}

	payload, err := c.executor.Execute(ctx, execute.Request{
		Type:      wireType(translated.Kind),
		SQL:       translated.SQL,
		Periods:   translated.Periods,
		UsedModel: translated.UsedModel,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "execution failed", slog.String("error", err.Error()))
		}
		return errorEntry(err)
	}

	rendered := render(translated, payload)
	return &Entry{
		ID:        uuid.New(),
		Role:      RoleSystem,
		Result:    rendered,
		Timestamp: time.Now(),
	}
}

// Finish appends the resolved entry and releases the conversation for
// the next submission. Rendering and Errored are transient: the
// conversation always ends up Idle so the next question can start.
// It must run on the event loop.
func (c *Conversation) Finish(entry *Entry) {
	if entry != nil {
		if entry.Err != "" {
			c.state = StateErrored
		} else {
			c.state = StateRendering
		}
		c.entries = append(c.entries, *entry)
	}
	c.state = StateIdle
}

// Submit runs the full cycle synchronously.
func (c *Conversation) Submit(ctx context.Context, question string) error {
	if err := c.Begin(question); err != nil {
		if err == ErrEmptyQuestion {
			return nil
		}
		return err
	}
	c.Finish(c.Resolve(ctx, question))
	return nil
}

func wireType(kind translate.Kind) string {
	if kind == translate.KindForecast {
		return execute.TypeForecast
	}
	return execute.TypeSQL
}

func errorEntry(err error) *Entry {
	message := genericErrorMessage
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		message = err.Error()
	}
	return &Entry{
		ID:        uuid.New(),
		Role:      RoleSystem,
		Err:       message,
		Timestamp: time.Now(),
	}
}

func render(translated translate.Result, payload json.RawMessage) *Rendered {
	if translated.Kind == translate.KindForecast {
		series := result.NormalizeForecast(payload)
		return &Rendered{
			Kind:       translate.KindForecast,
			Raw:        payload,
			Historical: displayTable(series.Historical, "Value"),
			Predicted:  displayTable(series.Forecast, "Predicted Value"),
			Series:     series,
			Points:     chart.ProjectTimeSeries(series),
			FieldNames: []string{"actual", "predicted"},
			XKey:       "date",
			ChartKind:  chart.KindLine,
		}
	}

	table := result.NormalizePlain(payload)
	xKey := "x"
	if len(table.Columns) > 0 {
		xKey = table.Columns[0]
	}
	return &Rendered{
		Kind:       translate.KindPlain,
		Raw:        payload,
		Table:      table,
		Points:     chart.ProjectTabular(table),
		FieldNames: []string{"y"},
		XKey:       xKey,
		ChartKind:  chart.KindBar,
	}
}

// displayTable shapes one half of a forecast answer for tabular
// display. A nil value renders as an empty cell.
func displayTable(points []result.Point, valueHeader string) result.Tabular {
	table := result.Tabular{Columns: []string{"Date", valueHeader}, Rows: [][]any{}}
	for _, p := range points {
		var value any
		if p.Value != nil {
			value = *p.Value
		}
		table.Rows = append(table.Rows, []any{p.Date, value})
	}
	return table
}
