// Package payoff computes expiry profit/loss curves for multi-leg option strategies.
package payoff

import (
	"math"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

// MaxSamples caps the number of prices a single sweep may produce.
const MaxSamples = 1_000_000

// Evaluate sweeps the price range and sums every leg's expiry profit at each
// sampled price. A zero range means models.DefaultPriceRange().
//
// Break-even points are sampled prices whose total profit is exactly zero.
// Crossings between samples are not reported; see Interpolate.
func Evaluate(legs []models.OptionLeg, rng models.PriceRange) (*models.StrategyResult, error) {
	if rng.IsZero() {
		rng = models.DefaultPriceRange()
	}
	if err := validateLegs(legs); err != nil {
		return nil, err
	}
	n, err := sampleCount(rng)
	if err != nil {
		return nil, err
	}

	result := &models.StrategyResult{
		Series:          make([]models.PricePoint, 0, n),
		MaxProfit:       math.Inf(-1),
		MaxLoss:         math.Inf(1),
		BreakEvenPoints: []float64{},
		NetPremium:      NetPremium(legs),
	}

	for i := 0; i < n; i++ {
		price := math.Min(rng.Min+float64(i)*rng.Step, rng.Max)
		profit := TotalProfit(legs, price)

		result.Series = append(result.Series, models.PricePoint{
			UnderlyingPrice: price,
			TotalProfit:     profit,
		})
		if profit > result.MaxProfit {
			result.MaxProfit = profit
		}
		if profit < result.MaxLoss {
			result.MaxLoss = profit
		}
		if profit == 0 {
			result.BreakEvenPoints = append(result.BreakEvenPoints, price)
		}
	}

	return result, nil
}

// TotalProfit is the summed expiry profit of legs at price.
func TotalProfit(legs []models.OptionLeg, price float64) float64 {
	var total float64
	for _, leg := range legs {
		total += LegProfit(leg, price)
	}
	return total
}

// LegProfit is the expiry profit of a single leg at price. A short leg is the
// negation of the long leg with the same strike and premium.
func LegProfit(leg models.OptionLeg, price float64) float64 {
	profit := Intrinsic(leg.Kind, leg.Strike, price) - leg.Premium
	if leg.Side == models.PositionShort {
		return -profit
	}
	return profit
}

// Intrinsic is the exercise value of an option at price.
func Intrinsic(kind models.OptionKind, strike, price float64) float64 {
	if kind == models.OptionPut {
		return math.Max(strike-price, 0)
	}
	return math.Max(price-strike, 0)
}

// NetPremium is the premium paid for long legs minus premium received for
// short legs.
func NetPremium(legs []models.OptionLeg) float64 {
	var net float64
	for _, leg := range legs {
		if leg.Side == models.PositionShort {
			net -= leg.Premium
		} else {
			net += leg.Premium
		}
	}
	return net
}

func validateLegs(legs []models.OptionLeg) error {
	if len(legs) == 0 {
		return apperrors.NewValidationError("legs", 0, "strategy needs at least one leg")
	}
	for i, leg := range legs {
		if !leg.Kind.Valid() {
			return apperrors.NewLegError(i, apperrors.NewValidationError("kind", leg.Kind, "must be CALL or PUT"))
		}
		if !leg.Side.Valid() {
			return apperrors.NewLegError(i, apperrors.NewValidationError("side", leg.Side, "must be LONG or SHORT"))
		}
		if !isFinite(leg.Strike) {
			return apperrors.NewLegError(i, apperrors.NewValidationError("strike", leg.Strike, "must be a finite number"))
		}
		if !isFinite(leg.Premium) {
			return apperrors.NewLegError(i, apperrors.NewValidationError("premium", leg.Premium, "must be a finite number"))
		}
	}
	return nil
}

func sampleCount(rng models.PriceRange) (int, error) {
	if !isFinite(rng.Min) || !isFinite(rng.Max) || !isFinite(rng.Step) {
		return 0, apperrors.NewValidationError("range", rng, "bounds and step must be finite")
	}
	if rng.Step <= 0 {
		return 0, apperrors.NewValidationError("range.step", rng.Step, "must be positive")
	}
	if rng.Max < rng.Min {
		return 0, apperrors.NewValidationError("range.max", rng.Max, "must not be below range.min")
	}

	// Tolerance keeps max reachable when (max-min)/step is an integer that
	// float division lands just under. Evaluate clamps the last price to max
	// when the tolerance rounds up a span that falls just short.
	steps := math.Floor((rng.Max-rng.Min)/rng.Step + 1e-9)
	if steps+1 > MaxSamples {
		return 0, apperrors.NewValidationError("range", rng, "too many samples")
	}
	return int(steps) + 1, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
