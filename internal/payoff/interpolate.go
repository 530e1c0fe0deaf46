package payoff

import (
	"options-analyzer/internal/models"
)

// Interpolate returns zero crossings of a sampled payoff curve, including
// those that fall between samples, by linear interpolation between
// neighbouring points. Payoffs are piecewise linear, so the estimate is exact
// whenever no strike lies strictly between the two samples.
//
// Evaluate never calls this; it is an opt-in alternative to the exact-sample
// break-even list.
func Interpolate(series []models.PricePoint) []float64 {
	points := []float64{}
	for i, pt := range series {
		if pt.TotalProfit == 0 {
			points = appendUnique(points, pt.UnderlyingPrice)
			continue
		}
		if i == 0 {
			continue
		}
		prev := series[i-1]
		if prev.TotalProfit == 0 {
			continue
		}
		if (prev.TotalProfit < 0) != (pt.TotalProfit < 0) {
			frac := prev.TotalProfit / (prev.TotalProfit - pt.TotalProfit)
			x := prev.UnderlyingPrice + frac*(pt.UnderlyingPrice-prev.UnderlyingPrice)
			points = appendUnique(points, x)
		}
	}
	return points
}

func appendUnique(points []float64, x float64) []float64 {
	if n := len(points); n > 0 && points[n-1] == x {
		return points
	}
	return append(points, x)
}
