// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber formats a price with the fewest digits that round-trip,
// so 105 prints as "105" and 102.5 as "102.5".
func FormatNumber(v float64) string {
	if v == 0 {
		// Avoid "-0".
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JoinNumbers formats values with FormatNumber and joins them with sep.
func JoinNumbers(values []float64, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, sep)
}

// FormatAmount formats a money amount with 2 decimal places.
func FormatAmount(amount float64) string {
	if math.Abs(amount) < 0.005 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", amount)
}

// FormatPnL formats P&L with sign.
func FormatPnL(pnl float64) string {
	formatted := FormatAmount(pnl)
	if pnl > 0 && formatted != "0.00" {
		return "+" + formatted
	}
	return formatted
}

// FormatCompact shortens large magnitudes for chart axis labels.
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return FormatAmount(v)
	}
}
