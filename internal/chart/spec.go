package chart

import (
	"github.com/querydeck/querydeck/internal/format"
	"github.com/querydeck/querydeck/internal/result"
)

// Kind selects the visual form of a chart.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindArea Kind = "area"
	KindPie  Kind = "pie"
)

// Kinds lists the selectable chart kinds in presentation order.
var Kinds = []Kind{KindLine, KindBar, KindArea, KindPie}

// palette is the fixed series color rotation. Colors are assigned by
// series position modulo the palette length, so assignment depends only
// on order, never on call history.
var palette = []string{
	"#007bff", "#28a745", "#ff7300", "#ff0000", "#6f42c1", "#20c997", "#fd7e14",
}

// ColorAt returns the palette color for a series or slice position.
func ColorAt(position int) string {
	if position < 0 {
		position = -position
	}
	return palette[position%len(palette)]
}

// Slice is one pie wedge, read straight from the first two raw columns
// of a tabular result.
type Slice struct {
	Name  string
	Value float64
	Color string
}

// Spec is a renderable chart configuration derived from a projected
// series. It carries no data of its own beyond pie slices; renderers
// pair it with the points it was built from.
type Spec struct {
	Kind       Kind
	XKey       string
	SeriesKeys []string
	Colors     []string
	Slices     []Slice
	Empty      bool
}

// ColorFor returns the color of a named series, or the first palette
// color for an unknown name.
func (s Spec) ColorFor(seriesKey string) string {
	for i, key := range s.SeriesKeys {
		if key == seriesKey {
			return s.Colors[i]
		}
	}
	return palette[0]
}

// FormatX renders an x tick label for this chart.
func (s Spec) FormatX(raw string) string {
	return format.FormatTick(raw)
}

// FormatY renders a y value for an axis tick or tooltip.
func (s Spec) FormatY(value float64) string {
	return format.FormatMagnitude(value)
}

// BuildSpec derives the chart configuration for a line, bar or area
// chart: one visual series per field name in the given order, colors
// assigned round-robin from the palette. An empty point list yields a
// spec flagged Empty, which renderers must show as a placeholder rather
// than a bare plot region. Pie charts bypass field projection; see
// BuildPieSpec.
func BuildSpec(points []SeriesPoint, kind Kind, xKey string, fieldNames []string) Spec {
	spec := Spec{Kind: kind, XKey: xKey}
	if len(points) == 0 {
		spec.Empty = true
		return spec
	}
	spec.SeriesKeys = append([]string(nil), fieldNames...)
	spec.Colors = make([]string, len(spec.SeriesKeys))
	for i := range spec.SeriesKeys {
		spec.Colors[i] = ColorAt(i)
	}
	return spec
}

// BuildPieSpec reinterprets the first two raw columns of the tabular
// source as name/value pairs. Pie answers "distribution across one
// categorical column", so it reads the table directly instead of the
// generic field projection.
func BuildPieSpec(t result.Tabular) Spec {
	spec := Spec{Kind: KindPie}
	if len(t.Rows) == 0 {
		spec.Empty = true
		return spec
	}
	for i, row := range t.Rows {
		var name string
		var value float64
		if len(row) > 0 {
			name = cellString(row[0])
		}
		if len(row) > 1 {
			if v, ok := numericCell(row[1]); ok {
				value = v
			}
		}
		spec.Slices = append(spec.Slices, Slice{Name: name, Value: value, Color: ColorAt(i)})
	}
	return spec
}

// TooltipLines builds the tooltip content for one point: the formatted
// x label followed by one "name: value" line per series field present
// on the point, in series order.
func TooltipLines(spec Spec, point SeriesPoint) []string {
	lines := make([]string, 0, 1+len(spec.SeriesKeys))
	lines = append(lines, spec.FormatX(point.XValue))
	for _, key := range spec.SeriesKeys {
		value, ok := point.Fields[key]
		if !ok {
			continue
		}
		lines = append(lines, key+": "+spec.FormatY(value))
	}
	return lines
}
