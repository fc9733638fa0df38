package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatPercent converte uma razão (0..1) em percentual com duas casas.
// Nulo ou NaN viram string vazia.
func FormatPercent(ratio *float64) string {
	if ratio == nil || math.IsNaN(*ratio) || math.IsInf(*ratio, 0) {
		return ""
	}

	return strconv.FormatFloat(*ratio*100, 'f', 2, 64)
}

// FormatNullableNumber formata valores de série; nulo vira string vazia
func FormatNullableNumber(value *float64) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return ""
	}

	return strconv.FormatFloat(*value, 'f', -1, 64)
}
