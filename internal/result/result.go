// Package result defines the canonical in-memory query results and the
// normalizers that map heterogeneous backend payloads onto them. All
// downstream projection and rendering consumes these two shapes only.
package result

// Tabular is the canonical relational result. Row order is display
// order; every row carries exactly len(Columns) cells. Cells are
// strings, numbers or nil as decoded from JSON.
type Tabular struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// IsEmpty reports whether the result has neither columns nor rows.
func (t Tabular) IsEmpty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// Point is one observation in a time series. Date is an opaque period
// label; Value is nil when the backend omitted it.
type Point struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// TimeSeries is the canonical forecast result. Both sequences are kept
// in the order the backend returned them; the core never re-sorts.
type TimeSeries struct {
	Historical []Point `json:"historical"`
	Forecast   []Point `json:"forecast"`
}

// IsEmpty reports whether the series holds no points at all.
func (ts TimeSeries) IsEmpty() bool {
	return len(ts.Historical) == 0 && len(ts.Forecast) == 0
}

func emptyTabular() Tabular {
	return Tabular{Columns: []string{}, Rows: [][]any{}}
}

func emptyTimeSeries() TimeSeries {
	return TimeSeries{Historical: []Point{}, Forecast: []Point{}}
}
