package kernel

import "math"

// RoundMoney normalizes a currency amount to 2 decimal places using half-up
// rounding. All persisted prices and fees pass through this helper.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
