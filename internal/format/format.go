// Package format holds the display formatters shared by chart axes,
// tooltips and the terminal renderer. All formatters are total: bad
// input falls back to an identity transform instead of an error.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// tickLayouts are tried longest-first so a partial layout never
// swallows a more specific timestamp.
var tickLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// FormatTick renders an x-axis tick. ISO-8601 date labels become an
// abbreviated month plus year ("2023-05-01" -> "May 2023"); anything
// unparseable is returned unchanged.
func FormatTick(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	for _, layout := range tickLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("Jan 2006")
		}
	}
	return raw
}

// FormatMagnitude renders a numeric axis or tooltip value. Values with
// |v| < 1000 pass through; larger magnitudes are scaled to the largest
// applicable unit with one decimal place, so exactly 1000 is "1.0K".
func FormatMagnitude(value float64) string {
	abs := math.Abs(value)
	switch {
	case abs >= 1_000_000_000:
		return strconv.FormatFloat(value/1_000_000_000, 'f', 1, 64) + "B"
	case abs >= 1_000_000:
		return strconv.FormatFloat(value/1_000_000, 'f', 1, 64) + "M"
	case abs >= 1_000:
		return strconv.FormatFloat(value/1_000, 'f', 1, 64) + "K"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
