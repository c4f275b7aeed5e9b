// Package view renders the chat transcript in the terminal: tables,
// charts and raw payloads for each answered question, plus the Bubble
// Tea model that wires them to the conversation.
package view

import (
	"fmt"
	"strings"

	"github.com/querydeck/querydeck/internal/chart"
	"github.com/querydeck/querydeck/internal/conversation"
	"github.com/querydeck/querydeck/internal/result"
	"github.com/querydeck/querydeck/internal/translate"
)

const noDataPlaceholder = "No data available"

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RenderTable lays out a tabular result as fixed-width text columns.
func RenderTable(t result.Tabular, width int) string {
	if t.IsEmpty() {
		return mutedStyle.Render(noDataPlaceholder)
	}

	widths := make([]int, len(t.Columns))
	for i, name := range t.Columns {
		widths[i] = len(name)
	}
	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = make([]string, len(t.Columns))
		for c := range t.Columns {
			var text string
			if c < len(row) {
				text = cellText(row[c])
			}
			cells[r][c] = text
			if len(text) > widths[c] {
				widths[c] = len(text)
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = headerCellStyle.Render(pad(name, widths[i]))
	}
	b.WriteString(strings.Join(header, "  "))
	b.WriteByte('\n')
	for _, row := range cells {
		line := make([]string, len(row))
		for i, text := range row {
			line[i] = pad(text, widths[i])
		}
		b.WriteString(strings.Join(line, "  "))
		b.WriteByte('\n')
	}
	return strings.TrimRight(truncateLines(b.String(), width), "\n")
}

// RenderChart draws the chart for a rendered result at the current
// chart kind. An empty spec always yields the placeholder, never a
// bare plot region.
func RenderChart(r *conversation.Rendered, width int) string {
	spec := r.Spec()
	if spec.Empty || (spec.Kind != chart.KindPie && len(r.Points) == 0) {
		return mutedStyle.Render(noDataPlaceholder)
	}
	switch spec.Kind {
	case chart.KindPie:
		return renderPie(spec)
	case chart.KindBar:
		return renderBars(spec, r.Points, width)
	default:
		return renderSparklines(spec, r.Points, width)
	}
}

// RenderResult renders one answered entry: its table(s) and chart, or
// the raw payload when toggled.
func RenderResult(r *conversation.Rendered, width int) string {
	if r.ShowRaw {
		return borderStyle.Render(truncateLines(string(r.Raw), width))
	}

	sections := make([]string, 0, 4)
	if r.Kind == translate.KindForecast {
		sections = append(sections,
			titleStyle.Render("Historical"),
			RenderTable(r.Historical, width),
			titleStyle.Render("Forecast"),
			RenderTable(r.Predicted, width),
		)
	} else {
		sections = append(sections, RenderTable(r.Table, width))
	}
	if r.HasChart() {
		sections = append(sections,
			titleStyle.Render(string(r.ChartKind)+" chart"),
			RenderChart(r, width),
		)
	}
	return strings.Join(sections, "\n")
}

// renderBars draws one horizontal bar row per point, labeled with the
// formatted x tick and magnitude. Values at or below zero draw an
// empty bar; the label still shows the value.
func renderBars(spec chart.Spec, points []chart.SeriesPoint, width int) string {
	maxValue := 0.0
	labelWidth := 0
	for _, p := range points {
		for _, key := range spec.SeriesKeys {
			if v, ok := p.Fields[key]; ok && v > maxValue {
				maxValue = v
			}
		}
		if l := len(spec.FormatX(p.XValue)); l > labelWidth {
			labelWidth = l
		}
	}

	barWidth := width - labelWidth - 12
	if barWidth < 8 {
		barWidth = 8
	}

	var b strings.Builder
	for _, p := range points {
		for _, key := range spec.SeriesKeys {
			value, ok := p.Fields[key]
			if !ok {
				continue
			}
			length := 0
			if maxValue > 0 && value > 0 {
				length = int(value / maxValue * float64(barWidth))
				if length < 1 {
					length = 1
				}
			}
			bar := seriesStyle(spec.ColorFor(key)).Render(strings.Repeat("█", length))
			fmt.Fprintf(&b, "%s %s %s\n", pad(spec.FormatX(p.XValue), labelWidth), bar, spec.FormatY(value))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSparklines draws line and area charts as one sparkline row per
// series, scaled against the shared maximum so the two forecast series
// stay comparable. Values at or below zero sit on the baseline glyph.
func renderSparklines(spec chart.Spec, points []chart.SeriesPoint, width int) string {
	maxValue := 0.0
	for _, p := range points {
		for _, key := range spec.SeriesKeys {
			if v, ok := p.Fields[key]; ok && v > maxValue {
				maxValue = v
			}
		}
	}

	var b strings.Builder
	for _, key := range spec.SeriesKeys {
		var spark strings.Builder
		last := 0.0
		present := false
		for _, p := range points {
			value, ok := p.Fields[key]
			if !ok {
				spark.WriteRune(' ')
				continue
			}
			present = true
			last = value
			level := 0
			if maxValue > 0 && value > 0 {
				level = int(value / maxValue * float64(len(sparkLevels)-1))
			}
			spark.WriteRune(sparkLevels[level])
		}
		if !present {
			continue
		}
		line := seriesStyle(spec.ColorFor(key)).Render(spark.String())
		fmt.Fprintf(&b, "%s %s %s\n", pad(key, 9), line, spec.FormatY(last))
	}
	if first, lastPoint := edgeLabels(points); first != "" {
		fmt.Fprintf(&b, "%s%s\n", pad(spec.FormatX(first), width-len(spec.FormatX(lastPoint))-1), spec.FormatX(lastPoint))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderPie lists slices with their share of the total.
func renderPie(spec chart.Spec) string {
	total := 0.0
	nameWidth := 0
	for _, slice := range spec.Slices {
		total += slice.Value
		if len(slice.Name) > nameWidth {
			nameWidth = len(slice.Name)
		}
	}

	var b strings.Builder
	for _, slice := range spec.Slices {
		share := 0.0
		if total > 0 {
			share = slice.Value / total * 100
		}
		marker := seriesStyle(slice.Color).Render("●")
		fmt.Fprintf(&b, "%s %s %5.1f%%  %s\n", marker, pad(slice.Name, nameWidth), share, spec.FormatY(slice.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func edgeLabels(points []chart.SeriesPoint) (string, string) {
	if len(points) == 0 {
		return "", ""
	}
	return points[0].XValue, points[len(points)-1].XValue
}

func cellText(cell any) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%v", cell)
}

func pad(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}

func truncateLines(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if len(line) > width {
			lines[i] = line[:width]
		}
	}
	return strings.Join(lines, "\n")
}
