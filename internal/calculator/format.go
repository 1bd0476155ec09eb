package calculator

import (
	"math"
	"strconv"
)

// FormatNumber renders f the way calculation summaries show operands and
// results: the shortest decimal that round-trips, switching to exponent
// form only for very large or very small magnitudes.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Summary builds the line passed to observers for one calculation.
func Summary(a, b float64, symbol string, result float64) string {
	return FormatNumber(a) + " " + symbol + " " + FormatNumber(b) + " = " + FormatNumber(result)
}
