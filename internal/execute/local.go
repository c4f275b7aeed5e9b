package execute

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/querydeck/querydeck/internal/forecast"
	"github.com/querydeck/querydeck/internal/observability"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"
	_ "github.com/mattn/go-sqlite3"
)

// supportedDrivers maps config driver names onto the registered
// database/sql drivers.
var supportedDrivers = map[string]string{
	"sqlite":   "sqlite3",
	"sqlite3":  "sqlite3",
	"postgres": "pgx",
	"pgx":      "pgx",
	"duckdb":   "duckdb",
}

// Open opens the relational backend for the given driver name.
func Open(driver, dsn string) (*sql.DB, error) {
	registered, ok := supportedDrivers[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(registered, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", registered, err)
	}
	return db, nil
}

// Local is the in-process executor over a relational backend.
type Local struct {
	DB         *sql.DB
	Driver     string
	Forecaster forecast.Forecaster
	Logger     *slog.Logger
}

// ErrSQLNotAllowed rejects statements that are not read-only queries.
type ErrSQLNotAllowed struct{ SQL string }

func (e *ErrSQLNotAllowed) Error() string {
	return "only SELECT/WITH queries are allowed"
}

func (l *Local) Execute(ctx context.Context, req Request) (json.RawMessage, error) {
	sqlText := strings.TrimSpace(req.SQL)
	if sqlText == "" {
		return nil, fmt.Errorf("sql is required")
	}
	if !IsReadOnly(sqlText) {
		return nil, &ErrSQLNotAllowed{SQL: sqlText}
	}

	if req.Type == TypeForecast {
		return l.executeForecast(ctx, sqlText, req.Periods)
	}
	return l.executePlain(ctx, sqlText)
}

func (l *Local) executePlain(ctx context.Context, sqlText string) (json.RawMessage, error) {
	columns, rows, err := l.queryRows(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	observability.IncrementExecution(TypeSQL)
	return marshalPayload(map[string]any{"columns": columns, "rows": rows})
}

func (l *Local) executeForecast(ctx context.Context, sqlText string, periods int) (json.RawMessage, error) {
	if l.Forecaster == nil {
		return nil, fmt.Errorf("forecasting is not configured")
	}
	if periods <= 0 {
		periods = 6
	}

	historical, err := l.querySeries(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	predicted, err := l.Forecaster.Forecast(ctx, historical, periods)
	if err != nil {
		return nil, fmt.Errorf("forecast failed: %w", err)
	}
	observability.IncrementExecution(TypeForecast)

	return marshalPayload(map[string]any{
		"columns": []string{"date", "value"},
		"forecast_result": map[string]any{
			"historical": historical,
			"forecast":   predicted,
		},
	})
}

// queryRows runs the statement and scans every row into display cells.
func (l *Local) queryRows(ctx context.Context, sqlText string) ([]string, [][]any, error) {
	rows, err := l.DB.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, nil, fmt.Errorf("sql execution error: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read result columns: %w", err)
	}

	out := make([][]any, 0, 64)
	for rows.Next() {
		cells := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range cells {
			targets[i] = &cells[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, nil, fmt.Errorf("scan result row: %w", err)
		}
		for i, cell := range cells {
			if raw, ok := cell.([]byte); ok {
				cells[i] = string(raw)
			}
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate result rows: %w", err)
	}
	return columns, out, nil
}

// querySeries runs the shaped forecast statement and requires the
// date/value column contract.
func (l *Local) querySeries(ctx context.Context, sqlText string) ([]forecast.Point, error) {
	columns, rows, err := l.queryRows(ctx, sqlText)
	if err != nil {
		return nil, err
	}

	dateIdx, valueIdx := -1, -1
	for i, name := range columns {
		switch strings.ToLower(name) {
		case "date":
			dateIdx = i
		case "value":
			valueIdx = i
		}
	}
	if dateIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("forecast queries must return columns [date, value], got %v", columns)
	}

	points := make([]forecast.Point, 0, len(rows))
	for _, row := range rows {
		point := forecast.Point{Date: stringCell(row[dateIdx])}
		value, err := floatCell(row[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in forecast series at %q: %w", point.Date, err)
		}
		point.Value = value
		points = append(points, point)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("forecast query returned no rows")
	}
	return points, nil
}

func stringCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func floatCell(cell any) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("unsupported cell type %T", cell)
	}
}

func marshalPayload(payload map[string]any) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal result payload: %w", err)
	}
	return raw, nil
}
