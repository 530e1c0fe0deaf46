package cli

import (
	"math"
	"strings"

	"options-analyzer/internal/models"
	"options-analyzer/pkg/utils"
)

const (
	chartPoint = '*'
	chartZero  = '─'
)

// PayoffChart draws a payoff series as an ASCII plot with at most width
// columns and exactly height rows, followed by an x axis and price labels.
// Columns sample the series evenly and always include both endpoints.
func PayoffChart(series []models.PricePoint, width, height int) []string {
	if len(series) == 0 || width < 1 || height < 2 {
		return nil
	}

	cols := width
	if len(series) < cols {
		cols = len(series)
	}
	sampleAt := func(c int) models.PricePoint {
		if cols == 1 {
			return series[0]
		}
		return series[c*(len(series)-1)/(cols-1)]
	}

	lo, hi := 0.0, 0.0
	for _, pt := range series {
		lo = math.Min(lo, pt.TotalProfit)
		hi = math.Max(hi, pt.TotalProfit)
	}
	if hi == lo {
		hi = lo + 1
	}
	rowOf := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(height-1)))
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	zero := rowOf(0)
	for c := 0; c < cols; c++ {
		grid[zero][c] = chartZero
	}
	for c := 0; c < cols; c++ {
		grid[rowOf(sampleAt(c).TotalProfit)][c] = chartPoint
	}

	labels := make([]string, height)
	labels[0] = utils.FormatCompact(hi)
	labels[height-1] = utils.FormatCompact(lo)
	labels[zero] = "0"
	gutter := 0
	for _, l := range labels {
		if len(l) > gutter {
			gutter = len(l)
		}
	}

	lines := make([]string, 0, height+2)
	for r, row := range grid {
		lines = append(lines, padLeft(labels[r], gutter)+" │"+string(row))
	}
	lines = append(lines, strings.Repeat(" ", gutter)+" └"+strings.Repeat("─", cols))
	lines = append(lines, strings.Repeat(" ", gutter+2)+axisLabels(
		utils.FormatNumber(series[0].UnderlyingPrice),
		utils.FormatNumber(sampleAt(cols/2).UnderlyingPrice),
		utils.FormatNumber(series[len(series)-1].UnderlyingPrice),
		cols,
	))
	return lines
}

// axisLabels places left, mid and right labels on a line of cols characters,
// dropping the middle one when they would overlap.
func axisLabels(left, mid, right string, cols int) string {
	line := []byte(strings.Repeat(" ", cols))
	if len(left)+len(right)+1 > cols {
		return left
	}
	copy(line, left)
	copy(line[cols-len(right):], right)

	start := cols/2 - len(mid)/2
	if start > len(left) && start+len(mid) < cols-len(right) {
		copy(line[start:], mid)
	}
	return strings.TrimRight(string(line), " ")
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
