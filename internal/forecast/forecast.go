// Package forecast predicts future values for a periodic series. The
// hosted client speaks a TimeGPT-style HTTP API; the trend model is the
// local fallback when the hosted service is unavailable.
package forecast

import (
	"context"
	"log/slog"
)

// Point is one observation or prediction in a periodic series.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Forecaster extends a historical series by horizon future periods.
type Forecaster interface {
	Forecast(ctx context.Context, historical []Point, horizon int) ([]Point, error)
}

// Fallback tries Primary first and degrades to Secondary on any error.
// The primary failure is logged, never surfaced.
type Fallback struct {
	Primary   Forecaster
	Secondary Forecaster
	Logger    *slog.Logger
}

func (f Fallback) Forecast(ctx context.Context, historical []Point, horizon int) ([]Point, error) {
	if f.Primary != nil {
		points, err := f.Primary.Forecast(ctx, historical, horizon)
		if err == nil {
			return points, nil
		}
		if f.Logger != nil {
			f.Logger.WarnContext(ctx, "primary forecaster failed, falling back", slog.Any("error", err))
		}
	}
	return f.Secondary.Forecast(ctx, historical, horizon)
}
