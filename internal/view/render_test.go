package view

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/querydeck/querydeck/internal/chart"
	"github.com/querydeck/querydeck/internal/conversation"
	"github.com/querydeck/querydeck/internal/result"
	"github.com/querydeck/querydeck/internal/translate"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	table := result.Tabular{
		Columns: []string{"name", "total"},
		Rows: [][]any{
			{"Acme", 42},
			{"Contoso Ltd", 7},
		},
	}
	out := RenderTable(table, 80)
	if !strings.Contains(out, "name") || !strings.Contains(out, "total") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "Contoso Ltd") || !strings.Contains(out, "42") {
		t.Fatalf("missing cells: %q", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
}

func TestRenderTableEmptyShowsPlaceholder(t *testing.T) {
	out := RenderTable(result.Tabular{Columns: []string{}, Rows: [][]any{}}, 80)
	if !strings.Contains(out, "No data available") {
		t.Fatalf("out = %q", out)
	}
}

func TestRenderChartEmptyShowsPlaceholder(t *testing.T) {
	rendered := &conversation.Rendered{
		Kind:      translate.KindPlain,
		ChartKind: chart.KindBar,
	}
	out := RenderChart(rendered, 80)
	if !strings.Contains(out, "No data available") {
		t.Fatalf("out = %q", out)
	}
}

func TestRenderBarChartShowsFormattedValues(t *testing.T) {
	rendered := &conversation.Rendered{
		Kind: translate.KindPlain,
		Points: []chart.SeriesPoint{
			{XValue: "2023-05-01", Fields: map[string]float64{"y": 1500000}},
			{XValue: "2023-06-01", Fields: map[string]float64{"y": 500000}},
		},
		FieldNames: []string{"y"},
		XKey:       "month",
		ChartKind:  chart.KindBar,
	}
	out := RenderChart(rendered, 80)
	if !strings.Contains(out, "May 2023") {
		t.Fatalf("expected formatted tick in %q", out)
	}
	if !strings.Contains(out, "1.5M") {
		t.Fatalf("expected formatted magnitude in %q", out)
	}
	if !strings.Contains(out, "█") {
		t.Fatalf("expected bars in %q", out)
	}
}

func TestRenderLineChartDrawsOneRowPerSeries(t *testing.T) {
	rendered := &conversation.Rendered{
		Kind: translate.KindForecast,
		Points: []chart.SeriesPoint{
			{XValue: "2024-01", Fields: map[string]float64{"actual": 100}},
			{XValue: "2024-02", Fields: map[string]float64{"predicted": 110}},
		},
		FieldNames: []string{"actual", "predicted"},
		XKey:       "date",
		ChartKind:  chart.KindLine,
	}
	out := RenderChart(rendered, 80)
	if !strings.Contains(out, "actual") || !strings.Contains(out, "predicted") {
		t.Fatalf("expected both series rows in %q", out)
	}
}

func TestRenderBarChartHandlesNegativeValues(t *testing.T) {
	rendered := &conversation.Rendered{
		Kind: translate.KindPlain,
		Points: []chart.SeriesPoint{
			{XValue: "2024-01", Fields: map[string]float64{"y": 100}},
			{XValue: "2024-02", Fields: map[string]float64{"y": -50}},
		},
		FieldNames: []string{"y"},
		XKey:       "month",
		ChartKind:  chart.KindBar,
	}
	out := RenderChart(rendered, 80)
	if !strings.Contains(out, "-50") {
		t.Fatalf("expected negative value label in %q", out)
	}
	if !strings.Contains(out, "█") {
		t.Fatalf("expected a bar for the positive row in %q", out)
	}
}

func TestRenderLineChartHandlesNegativeValues(t *testing.T) {
	rendered := &conversation.Rendered{
		Kind: translate.KindForecast,
		Points: []chart.SeriesPoint{
			{XValue: "2024-01", Fields: map[string]float64{"actual": 100}},
			{XValue: "2024-02", Fields: map[string]float64{"predicted": -50}},
		},
		FieldNames: []string{"actual", "predicted"},
		XKey:       "date",
		ChartKind:  chart.KindLine,
	}
	out := RenderChart(rendered, 80)
	if !strings.Contains(out, "actual") || !strings.Contains(out, "predicted") {
		t.Fatalf("expected both series rows in %q", out)
	}
	if !strings.Contains(out, "-50") {
		t.Fatalf("expected negative value label in %q", out)
	}
}

func TestRenderPieChartShowsShares(t *testing.T) {
	rendered := &conversation.Rendered{
		Kind: translate.KindPlain,
		Table: result.Tabular{
			Columns: []string{"category", "total"},
			Rows:    [][]any{{"Beverages", 75.0}, {"Produce", 25.0}},
		},
		Points:    []chart.SeriesPoint{{XValue: "Beverages", Fields: map[string]float64{"y": 75}}},
		ChartKind: chart.KindPie,
	}
	out := RenderChart(rendered, 80)
	if !strings.Contains(out, "Beverages") || !strings.Contains(out, "75.0%") {
		t.Fatalf("out = %q", out)
	}
	if !strings.Contains(out, "25.0%") {
		t.Fatalf("out = %q", out)
	}
}

func TestRenderResultRawToggle(t *testing.T) {
	raw := json.RawMessage(`{"columns":["n"],"rows":[[1]]}`)
	rendered := &conversation.Rendered{
		Kind:      translate.KindPlain,
		Raw:       raw,
		Table:     result.Tabular{Columns: []string{"n"}, Rows: [][]any{{1}}},
		ChartKind: chart.KindBar,
	}
	rendered.ShowRaw = true
	out := RenderResult(rendered, 120)
	if !strings.Contains(out, `"columns"`) {
		t.Fatalf("expected raw payload in %q", out)
	}
}

func TestRenderResultForecastShowsBothTables(t *testing.T) {
	value := 100.0
	predicted := 110.0
	rendered := &conversation.Rendered{
		Kind:       translate.KindForecast,
		Historical: result.Tabular{Columns: []string{"Date", "Value"}, Rows: [][]any{{"2024-01", value}}},
		Predicted:  result.Tabular{Columns: []string{"Date", "Predicted Value"}, Rows: [][]any{{"2024-02", predicted}}},
		Points: []chart.SeriesPoint{
			{XValue: "2024-01", Fields: map[string]float64{"actual": value}},
			{XValue: "2024-02", Fields: map[string]float64{"predicted": predicted}},
		},
		FieldNames: []string{"actual", "predicted"},
		XKey:       "date",
		ChartKind:  chart.KindLine,
	}
	out := RenderResult(rendered, 120)
	if !strings.Contains(out, "Historical") || !strings.Contains(out, "Forecast") {
		t.Fatalf("expected both sections in %q", out)
	}
	if !strings.Contains(out, "Predicted Value") {
		t.Fatalf("expected forecast table header in %q", out)
	}
}
