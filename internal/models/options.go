// Package models provides domain models for the options analyzer.
package models

import (
	"fmt"
	"strings"
)

// OptionKind is the contract type of a leg.
type OptionKind string

const (
	OptionCall OptionKind = "CALL"
	OptionPut  OptionKind = "PUT"
)

// PositionSide is whether a leg is held or written.
type PositionSide string

const (
	PositionLong  PositionSide = "LONG"
	PositionShort PositionSide = "SHORT"
)

// ParseOptionKind accepts call/put in the spellings traders type (CE/PE included).
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CALL", "C", "CE":
		return OptionCall, nil
	case "PUT", "P", "PE":
		return OptionPut, nil
	}
	return "", fmt.Errorf("unknown option kind %q", s)
}

// ParsePositionSide accepts long/short and buy/sell.
func ParsePositionSide(s string) (PositionSide, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LONG", "BUY", "L":
		return PositionLong, nil
	case "SHORT", "SELL", "S":
		return PositionShort, nil
	}
	return "", fmt.Errorf("unknown position side %q", s)
}

// Valid reports whether k is a known kind.
func (k OptionKind) Valid() bool {
	return k == OptionCall || k == OptionPut
}

// Valid reports whether s is a known side.
func (s PositionSide) Valid() bool {
	return s == PositionLong || s == PositionShort
}

// OptionLeg is one contract position in a strategy. Legs are values; copy freely.
type OptionLeg struct {
	Kind    OptionKind   `json:"kind" yaml:"kind"`
	Strike  float64      `json:"strike" yaml:"strike"`
	Premium float64      `json:"premium" yaml:"premium"`
	Side    PositionSide `json:"side" yaml:"side"`
}

// String renders a leg as "LONG CALL 100 @ 5".
func (l OptionLeg) String() string {
	return fmt.Sprintf("%s %s %g @ %g", l.Side, l.Kind, l.Strike, l.Premium)
}

// PriceRange is the inclusive sweep of underlying prices.
type PriceRange struct {
	Min  float64 `json:"min" mapstructure:"min"`
	Max  float64 `json:"max" mapstructure:"max"`
	Step float64 `json:"step" mapstructure:"step"`
}

// DefaultPriceRange returns 0..200 step 1.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: 0, Max: 200, Step: 1}
}

// IsZero reports whether no range was given.
func (r PriceRange) IsZero() bool {
	return r == PriceRange{}
}

// PricePoint is one sample of the payoff curve.
type PricePoint struct {
	UnderlyingPrice float64 `json:"underlying_price"`
	TotalProfit     float64 `json:"total_profit"`
}

// StrategyResult is the evaluated payoff of a strategy.
type StrategyResult struct {
	Series          []PricePoint `json:"series"`
	MaxProfit       float64      `json:"max_profit"`
	MaxLoss         float64      `json:"max_loss"`
	BreakEvenPoints []float64    `json:"break_even_points"`
	NetPremium      float64      `json:"net_premium"` // positive = debit, negative = credit
}

// OptionStrategy is a named set of legs, as loaded from presets or files.
type OptionStrategy struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Legs        []OptionLeg `json:"legs" yaml:"legs"`
}
