// Package money provides currency-precision arithmetic helpers. All monetary
// values in the system are rounded to 2 decimal places using half-away-from-zero
// semantics before they are persisted or returned to clients.
package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FloorDiv returns floor(a / b). Used for counting whole EMIs covered by a payment.
func FloorDiv(a, b float64) int {
	return int(decimal.NewFromFloat(a).Div(decimal.NewFromFloat(b)).Floor().IntPart())
}

// CeilDiv returns ceil(a / b). Any non-zero fractional remainder counts as one
// more installment due.
func CeilDiv(a, b float64) int {
	return int(decimal.NewFromFloat(a).Div(decimal.NewFromFloat(b)).Ceil().IntPart())
}
