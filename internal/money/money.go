// Package money handles monetary amounts as int64 paise (currency minor
// units). All API responses render amounts with exactly two decimal places.
package money

import (
	"fmt"
	"math"
)

// Format renders an amount in paise as a two-decimal string, e.g. 300 -> "3.00".
func Format(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}

// FromFloat converts a major-unit amount (e.g. 20.5 rupees) to paise,
// rounding to the nearest paisa.
func FromFloat(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ToFloat converts paise back to major units for numeric payload fields.
func ToFloat(paise int64) float64 {
	return float64(paise) / 100
}
