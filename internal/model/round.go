package model

import (
	"math"
	"strconv"
)

// Round rounds x to the given number of decimal places, half-to-even on the
// exact binary value. 3.0999999999999996 rounds to 3.1 at two places.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}
