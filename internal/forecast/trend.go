package forecast

import (
	"context"
	"fmt"
)

// minObservations is the shortest series the trend model accepts.
const minObservations = 3

// TrendModel is Holt's linear exponential smoothing: a level and trend
// component updated per observation, extrapolated linearly over the
// horizon. It runs entirely in process and needs no credentials.
type TrendModel struct {
	Alpha float64 // level smoothing, (0,1]
	Beta  float64 // trend smoothing, (0,1]
}

// NewTrendModel returns a model with smoothing factors that behave well
// on short monthly business series.
func NewTrendModel() TrendModel {
	return TrendModel{Alpha: 0.5, Beta: 0.3}
}

func (m TrendModel) Forecast(_ context.Context, historical []Point, horizon int) ([]Point, error) {
	if len(historical) < minObservations {
		return nil, fmt.Errorf("not enough data points for forecasting: have %d, need %d", len(historical), minObservations)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	alpha, beta := m.Alpha, m.Beta
	if alpha <= 0 || alpha > 1 {
		alpha = 0.5
	}
	if beta <= 0 || beta > 1 {
		beta = 0.3
	}

	level := historical[0].Value
	trend := historical[1].Value - historical[0].Value
	for _, p := range historical[1:] {
		previousLevel := level
		level = alpha*p.Value + (1-alpha)*(level+trend)
		trend = beta*(level-previousLevel) + (1-beta)*trend
	}

	labels := futureLabels(historical[len(historical)-1].Date, horizon)
	points := make([]Point, horizon)
	for i := 0; i < horizon; i++ {
		points[i] = Point{
			Date:  labels[i],
			Value: level + float64(i+1)*trend,
		}
	}
	return points, nil
}
