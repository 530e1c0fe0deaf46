// Package strategy owns the editable list of legs that feeds the payoff engine.
package strategy

import (
	"strconv"
	"strings"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
	"options-analyzer/internal/payoff"
)

// MaxLegs is the default upper bound on legs in one strategy.
const MaxLegs = 4

// DefaultLeg is the leg a new strategy starts with and Add appends.
func DefaultLeg() models.OptionLeg {
	return models.OptionLeg{
		Kind:    models.OptionCall,
		Strike:  100,
		Premium: 5,
		Side:    models.PositionLong,
	}
}

// Builder holds a mutable list of between one and maxLegs legs. It is not
// safe for concurrent use.
type Builder struct {
	legs    []models.OptionLeg
	maxLegs int
}

// NewBuilder creates a builder holding DefaultLeg. maxLegs <= 0 means MaxLegs.
func NewBuilder(maxLegs int) *Builder {
	if maxLegs <= 0 {
		maxLegs = MaxLegs
	}
	return &Builder{
		legs:    []models.OptionLeg{DefaultLeg()},
		maxLegs: maxLegs,
	}
}

// MaxLegs returns the leg limit.
func (b *Builder) MaxLegs() int {
	return b.maxLegs
}

// Len returns the number of legs.
func (b *Builder) Len() int {
	return len(b.legs)
}

// Legs returns a copy of the current legs.
func (b *Builder) Legs() []models.OptionLeg {
	out := make([]models.OptionLeg, len(b.legs))
	copy(out, b.legs)
	return out
}

// Add appends a leg.
func (b *Builder) Add(leg models.OptionLeg) error {
	if len(b.legs) >= b.maxLegs {
		return apperrors.Wrapf(apperrors.ErrTooManyLegs, "limit is %d", b.maxLegs)
	}
	b.legs = append(b.legs, leg)
	return nil
}

// AddDefault appends DefaultLeg.
func (b *Builder) AddDefault() error {
	return b.Add(DefaultLeg())
}

// Remove deletes the leg at index i. The last remaining leg cannot be removed.
func (b *Builder) Remove(i int) error {
	if i < 0 || i >= len(b.legs) {
		return apperrors.Wrapf(apperrors.ErrLegIndex, "index %d", i)
	}
	if len(b.legs) == 1 {
		return apperrors.ErrLastLeg
	}
	b.legs = append(b.legs[:i:i], b.legs[i+1:]...)
	return nil
}

// Replace swaps the whole leg list, enforcing the same bounds as Add and Remove.
func (b *Builder) Replace(legs []models.OptionLeg) error {
	if len(legs) == 0 {
		return apperrors.NewValidationError("legs", 0, "at least one leg is required")
	}
	if len(legs) > b.maxLegs {
		return apperrors.Wrapf(apperrors.ErrTooManyLegs, "got %d, limit is %d", len(legs), b.maxLegs)
	}
	b.legs = make([]models.OptionLeg, len(legs))
	copy(b.legs, legs)
	return nil
}

// Update sets one field of the leg at index i from its text form. Fields are
// kind, strike, premium and side.
func (b *Builder) Update(i int, field, value string) error {
	if i < 0 || i >= len(b.legs) {
		return apperrors.Wrapf(apperrors.ErrLegIndex, "index %d", i)
	}

	leg := b.legs[i]
	switch strings.ToLower(field) {
	case "kind", "type":
		kind, err := models.ParseOptionKind(value)
		if err != nil {
			return apperrors.NewLegError(i, apperrors.NewValidationError("kind", value, err.Error()))
		}
		leg.Kind = kind
	case "side", "position":
		side, err := models.ParsePositionSide(value)
		if err != nil {
			return apperrors.NewLegError(i, apperrors.NewValidationError("side", value, err.Error()))
		}
		leg.Side = side
	case "strike", "strikeprice":
		f, err := parseNumber("strike", value)
		if err != nil {
			return apperrors.NewLegError(i, err)
		}
		leg.Strike = f
	case "premium":
		f, err := parseNumber("premium", value)
		if err != nil {
			return apperrors.NewLegError(i, err)
		}
		leg.Premium = f
	default:
		return apperrors.NewValidationError("field", field, "must be kind, strike, premium or side")
	}

	b.legs[i] = leg
	return nil
}

// Evaluate runs the payoff engine over the current legs.
func (b *Builder) Evaluate(rng models.PriceRange) (*models.StrategyResult, error) {
	return payoff.Evaluate(b.Legs(), rng)
}

// ParseLeg parses "kind:strike:premium[:side]", e.g. "put:95:3.5:short".
// Side defaults to long.
func ParseLeg(s string) (models.OptionLeg, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 3 || len(parts) > 4 {
		return models.OptionLeg{}, apperrors.NewValidationError("leg", s, "want kind:strike:premium[:side]")
	}

	kind, err := models.ParseOptionKind(parts[0])
	if err != nil {
		return models.OptionLeg{}, apperrors.NewValidationError("kind", parts[0], err.Error())
	}
	strike, err := parseNumber("strike", parts[1])
	if err != nil {
		return models.OptionLeg{}, err
	}
	premium, err := parseNumber("premium", parts[2])
	if err != nil {
		return models.OptionLeg{}, err
	}
	side := models.PositionLong
	if len(parts) == 4 {
		side, err = models.ParsePositionSide(parts[3])
		if err != nil {
			return models.OptionLeg{}, apperrors.NewValidationError("side", parts[3], err.Error())
		}
	}

	return models.OptionLeg{Kind: kind, Strike: strike, Premium: premium, Side: side}, nil
}

func parseNumber(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, apperrors.NewValidationError(field, value, "not a number")
	}
	return f, nil
}
