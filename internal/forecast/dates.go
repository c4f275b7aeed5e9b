package forecast

import (
	"strconv"
	"time"
)

// periodLayouts are the period-label shapes SQL aggregation produces.
var periodLayouts = []struct {
	layout string
	step   func(time.Time) time.Time
}{
	{"2006-01-02", func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }},
	{"2006-01", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }},
	{"2006", func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }},
}

// futureLabels extends a period label sequence by n steps, inferring
// the period granularity from the last label. Labels that match no
// known layout fall back to ordinal t+1, t+2, ... placeholders.
func futureLabels(last string, n int) []string {
	labels := make([]string, 0, n)
	for _, candidate := range periodLayouts {
		parsed, err := time.Parse(candidate.layout, last)
		if err != nil {
			continue
		}
		cursor := parsed
		for i := 0; i < n; i++ {
			cursor = candidate.step(cursor)
			labels = append(labels, cursor.Format(candidate.layout))
		}
		return labels
	}
	for i := 1; i <= n; i++ {
		labels = append(labels, "t+"+strconv.Itoa(i))
	}
	return labels
}
