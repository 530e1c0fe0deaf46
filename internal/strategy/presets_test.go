package strategy

import (
	"reflect"
	"testing"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
	"options-analyzer/internal/payoff"
)

func TestPreset_Results(t *testing.T) {
	tests := []struct {
		name       string
		maxProfit  float64
		maxLoss    float64
		breakEvens []float64
		crossings  []float64
	}{
		{name: "long-call", maxProfit: 95, maxLoss: -5, breakEvens: []float64{105}, crossings: []float64{105}},
		{name: "long-put", maxProfit: 95, maxLoss: -5, breakEvens: []float64{95}, crossings: []float64{95}},
		{name: "straddle", maxProfit: 90, maxLoss: -10, breakEvens: []float64{90, 110}, crossings: []float64{90, 110}},
		{name: "strangle", maxProfit: 85, maxLoss: -5, breakEvens: []float64{85, 115}, crossings: []float64{85, 115}},
		{name: "bull-call-spread", maxProfit: 7.5, maxLoss: -2.5, breakEvens: []float64{}, crossings: []float64{102.5}},
		{name: "bear-put-spread", maxProfit: 7.5, maxLoss: -2.5, breakEvens: []float64{}, crossings: []float64{97.5}},
		{name: "iron-condor", maxProfit: 2.5, maxLoss: -7.5, breakEvens: []float64{}, crossings: []float64{87.5, 112.5}},
		{name: "butterfly", maxProfit: 7.5, maxLoss: -2.5, breakEvens: []float64{}, crossings: []float64{92.5, 107.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Preset(tt.name, DefaultPresetParams())
			if err != nil {
				t.Fatalf("Preset() error = %v", err)
			}
			if len(s.Legs) > MaxLegs {
				t.Fatalf("preset has %d legs", len(s.Legs))
			}
			result, err := payoff.Evaluate(s.Legs, models.DefaultPriceRange())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if result.MaxProfit != tt.maxProfit {
				t.Errorf("MaxProfit = %v, want %v", result.MaxProfit, tt.maxProfit)
			}
			if result.MaxLoss != tt.maxLoss {
				t.Errorf("MaxLoss = %v, want %v", result.MaxLoss, tt.maxLoss)
			}
			if !reflect.DeepEqual(result.BreakEvenPoints, tt.breakEvens) {
				t.Errorf("BreakEvenPoints = %v, want %v", result.BreakEvenPoints, tt.breakEvens)
			}
			if got := payoff.Interpolate(result.Series); !reflect.DeepEqual(got, tt.crossings) {
				t.Errorf("Interpolate() = %v, want %v", got, tt.crossings)
			}
		})
	}
}

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	if len(names) != len(presets) {
		t.Fatalf("len(PresetNames()) = %d, want %d", len(names), len(presets))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestPreset_Unknown(t *testing.T) {
	if _, err := Preset("jade-lizard", DefaultPresetParams()); !apperrors.Is(err, apperrors.ErrUnknownPreset) {
		t.Errorf("Preset() error = %v, want ErrUnknownPreset", err)
	}
}
