// Package chart turns canonical query results into chart-ready series
// and renderable chart specs. Projection and spec building are pure:
// identical inputs always yield identical outputs.
package chart

import (
	"strconv"
	"strings"

	"github.com/querydeck/querydeck/internal/result"
)

// SeriesPoint is one chart point: an x value plus zero or more named
// numeric fields. Absent fields are omitted, never zero-filled.
type SeriesPoint struct {
	XValue string
	Fields map[string]float64
}

var numericStripper = strings.NewReplacer("$", "", ",", "")

// DesignatedColumn finds the y-column of a tabular result: the first
// column after the x column whose cell in row 0 parses as a number once
// currency symbols and thousands separators are stripped. Only the
// first row is inspected; later rows are trusted to match. Returns -1
// when no column qualifies.
func DesignatedColumn(t result.Tabular) int {
	if len(t.Rows) == 0 {
		return -1
	}
	first := t.Rows[0]
	for i := 1; i < len(first) && i < len(t.Columns); i++ {
		if _, ok := numericCell(first[i]); ok {
			return i
		}
	}
	return -1
}

// ProjectTabular reshapes a tabular result into a single-field series:
// column 0 supplies the x value and the designated column supplies y.
// A non-numeric cell in the designated column of a later row coerces to
// zero so charting always proceeds. No designated column means no
// chart: the projection is empty.
func ProjectTabular(t result.Tabular) []SeriesPoint {
	col := DesignatedColumn(t)
	if col < 0 {
		return nil
	}
	points := make([]SeriesPoint, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		y := 0.0
		if col < len(row) {
			if v, ok := numericCell(row[col]); ok {
				y = v
			}
		}
		points = append(points, SeriesPoint{
			XValue: cellString(row[0]),
			Fields: map[string]float64{"y": y},
		})
	}
	return points
}

// ProjectTimeSeries reshapes a forecast result: one point per
// historical entry carrying the actual field, then one point per
// forecast entry carrying the predicted field. The two lists are
// concatenated, not merged by date, so a consumer may see the same x
// value twice when the ranges overlap.
func ProjectTimeSeries(ts result.TimeSeries) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(ts.Historical)+len(ts.Forecast))
	for _, p := range ts.Historical {
		points = append(points, SeriesPoint{XValue: p.Date, Fields: singleField("actual", p.Value)})
	}
	for _, p := range ts.Forecast {
		points = append(points, SeriesPoint{XValue: p.Date, Fields: singleField("predicted", p.Value)})
	}
	return points
}

func singleField(name string, value *float64) map[string]float64 {
	if value == nil {
		return map[string]float64{}
	}
	return map[string]float64{name: *value}
}

func numericCell(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		stripped := strings.TrimSpace(numericStripper.Replace(v))
		if stripped == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
