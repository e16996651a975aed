package number

import (
	"math"
	"strconv"
)

var epsilon = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func FloatToStr(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

func Clamp(f float64, min float64, max float64) float64 {
	if f < min {
		return min
	}

	if f > max {
		return max
	}

	return f
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Mod wraps f into [0, modulo), handling negative values; the native
// math.Mod keeps the sign of the dividend.
func Mod(f float64, modulo float64) float64 {
	m := math.Mod(f, modulo)
	if m < 0 {
		m += modulo
	}

	return m
}
