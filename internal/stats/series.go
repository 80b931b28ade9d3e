// Package stats derives summary figures from the agents' time series for the
// charting and reporting consumers.
package stats

import (
	"errors"
	"math"

	"CommonPool/internal/model"

	"gonum.org/v1/gonum/stat"
)

// SMA computes the simple moving average of the last period values.
func SMA(series []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(series) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	return stat.Mean(series[len(series)-period:], nil), nil
}

// MovingAverage returns the trailing simple moving average for every point of
// the series; the first period-1 points average over what is available.
func MovingAverage(series []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(series))
	for i := range series {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		out[i] = stat.Mean(series[start:i+1], nil)
	}
	return out, nil
}

// Correlations holds the Pearson correlation of final money with the final
// risk-willingness and with the adaptability across all agents.
type Correlations struct {
	MoneyRisk         float64
	MoneyAdaptability float64
}

// FinalCorrelations correlates the agents' final money with their traits.
// A correlation with a constant series is reported as 0.
func FinalCorrelations(agents []model.AgentSeries) (Correlations, error) {
	if len(agents) < 2 {
		return Correlations{}, errors.New("need at least two agents to correlate")
	}
	money := make([]float64, len(agents))
	risk := make([]float64, len(agents))
	adapt := make([]float64, len(agents))
	for i, a := range agents {
		money[i] = a.Money
		risk[i] = a.RiskLevel
		adapt[i] = a.Adaptability
	}
	return Correlations{
		MoneyRisk:         pearson(money, risk),
		MoneyAdaptability: pearson(money, adapt),
	}, nil
}

func pearson(x, y []float64) float64 {
	c := stat.Correlation(x, y, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}
