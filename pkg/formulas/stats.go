// Package formulas provides reusable statistical helpers for portfolio analytics.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// HerfindahlIndex calculates the Herfindahl-Hirschman index from group exposures.
// Shares are expressed in percentage points, so the result is on the usual
// 0-10000 scale (10000 = everything in a single group).
func HerfindahlIndex(exposures []float64) float64 {
	total := 0.0
	for _, e := range exposures {
		total += e
	}
	if total <= 0 {
		return 0
	}

	hhi := 0.0
	for _, e := range exposures {
		share := e / total * 100
		hhi += share * share
	}
	return hhi
}

// Round1 rounds to 1 decimal place
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Round2 rounds to 2 decimal places
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// SafeRate returns numerator/denominator*100, or 0 when the denominator is
// not positive. Percentage computations over empty portfolios must never panic.
func SafeRate(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator * 100
}
