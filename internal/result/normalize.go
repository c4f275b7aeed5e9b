package result

import "encoding/json"

// NormalizePlain extracts the canonical tabular result from a plain
// query payload. A payload missing either columns or rows, or one that
// fails to decode, degrades to an empty result; normalization never
// reports an error.
func NormalizePlain(payload json.RawMessage) Tabular {
	var decoded Tabular
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return emptyTabular()
	}
	if decoded.Columns == nil || decoded.Rows == nil {
		return emptyTabular()
	}
	return decoded
}

// forecastPoint is the wire shape of one forecast observation. Hosted
// forecasters label fields ds/TimeGPT, the local path uses date/value;
// pointers distinguish an explicit zero from a missing key.
type forecastPoint struct {
	Date    *string  `json:"date"`
	DS      *string  `json:"ds"`
	Value   *float64 `json:"value"`
	TimeGPT *float64 `json:"TimeGPT"`
}

func (p forecastPoint) canonical() Point {
	var out Point
	switch {
	case p.Date != nil:
		out.Date = *p.Date
	case p.DS != nil:
		out.Date = *p.DS
	}
	switch {
	case p.Value != nil:
		out.Value = p.Value
	case p.TimeGPT != nil:
		out.Value = p.TimeGPT
	}
	return out
}

type forecastBody struct {
	Historical []Point         `json:"historical"`
	Forecast   []forecastPoint `json:"forecast"`
}

func (b forecastBody) canonical() TimeSeries {
	ts := emptyTimeSeries()
	if len(b.Historical) > 0 {
		ts.Historical = b.Historical
	}
	for _, p := range b.Forecast {
		ts.Forecast = append(ts.Forecast, p.canonical())
	}
	return ts
}

// NormalizeForecast maps a forecast payload onto the canonical time
// series. The backend speaks two shapes: a wrapper object carrying a
// forecast_result field, or the historical/forecast sequences at the
// top level. Shapes are tried in that order and the first match wins;
// a payload matching neither degrades to an empty series.
func NormalizeForecast(payload json.RawMessage) TimeSeries {
	for _, decode := range []func(json.RawMessage) (TimeSeries, bool){
		decodeWrappedForecast,
		decodeTopLevelForecast,
	} {
		if ts, ok := decode(payload); ok {
			return ts
		}
	}
	return emptyTimeSeries()
}

func decodeWrappedForecast(payload json.RawMessage) (TimeSeries, bool) {
	var wrapper struct {
		ForecastResult *forecastBody `json:"forecast_result"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil || wrapper.ForecastResult == nil {
		return TimeSeries{}, false
	}
	return wrapper.ForecastResult.canonical(), true
}

func decodeTopLevelForecast(payload json.RawMessage) (TimeSeries, bool) {
	var body forecastBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return TimeSeries{}, false
	}
	return body.canonical(), true
}
