// Package service implements the application's business logic on top of the
// ledger engine and the repositories.
package service

import "math"

// round2 rounds a monetary value to two decimal places. Rounding happens only
// at the projection layer; ledger state keeps full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
