package strategy

import (
	"sort"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

// PresetParams positions a preset. At-the-money legs cost Premium, wings one
// Width away cost half of it and wings two widths away a quarter.
type PresetParams struct {
	Center  float64
	Width   float64
	Premium float64
}

// DefaultPresetParams centers presets in the default price range.
func DefaultPresetParams() PresetParams {
	return PresetParams{Center: 100, Width: 10, Premium: 5}
}

type preset struct {
	description string
	build       func(p PresetParams) []models.OptionLeg
}

func leg(kind models.OptionKind, side models.PositionSide, strike, premium float64) models.OptionLeg {
	return models.OptionLeg{Kind: kind, Strike: strike, Premium: premium, Side: side}
}

var presets = map[string]preset{
	"long-call": {
		description: "Buy ATM Call",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionCall, models.PositionLong, p.Center, p.Premium),
			}
		},
	},
	"long-put": {
		description: "Buy ATM Put",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionPut, models.PositionLong, p.Center, p.Premium),
			}
		},
	},
	"straddle": {
		description: "Buy ATM Call + Put",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionCall, models.PositionLong, p.Center, p.Premium),
				leg(models.OptionPut, models.PositionLong, p.Center, p.Premium),
			}
		},
	},
	"strangle": {
		description: "Buy OTM Call + Put",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionPut, models.PositionLong, p.Center-p.Width, p.Premium/2),
				leg(models.OptionCall, models.PositionLong, p.Center+p.Width, p.Premium/2),
			}
		},
	},
	"bull-call-spread": {
		description: "Buy lower strike Call, Sell higher strike Call",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionCall, models.PositionLong, p.Center, p.Premium),
				leg(models.OptionCall, models.PositionShort, p.Center+p.Width, p.Premium/2),
			}
		},
	},
	"bear-put-spread": {
		description: "Buy higher strike Put, Sell lower strike Put",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionPut, models.PositionLong, p.Center, p.Premium),
				leg(models.OptionPut, models.PositionShort, p.Center-p.Width, p.Premium/2),
			}
		},
	},
	"iron-condor": {
		description: "Sell OTM Call + Put, Buy further OTM Call + Put",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionPut, models.PositionLong, p.Center-2*p.Width, p.Premium/4),
				leg(models.OptionPut, models.PositionShort, p.Center-p.Width, p.Premium/2),
				leg(models.OptionCall, models.PositionShort, p.Center+p.Width, p.Premium/2),
				leg(models.OptionCall, models.PositionLong, p.Center+2*p.Width, p.Premium/4),
			}
		},
	},
	"butterfly": {
		description: "Buy 1 ITM, Sell 2 ATM, Buy 1 OTM Call",
		build: func(p PresetParams) []models.OptionLeg {
			return []models.OptionLeg{
				leg(models.OptionCall, models.PositionLong, p.Center-p.Width, p.Premium*2),
				leg(models.OptionCall, models.PositionShort, p.Center, p.Premium),
				leg(models.OptionCall, models.PositionShort, p.Center, p.Premium),
				leg(models.OptionCall, models.PositionLong, p.Center+p.Width, p.Premium/2),
			}
		},
	},
}

// PresetNames lists preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds the named strategy.
func Preset(name string, p PresetParams) (*models.OptionStrategy, error) {
	ps, ok := presets[name]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrUnknownPreset, "%q", name)
	}
	return &models.OptionStrategy{
		Name:        name,
		Description: ps.description,
		Legs:        ps.build(p),
	}, nil
}
