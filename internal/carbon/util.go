package carbon

import (
	"math"
	"strconv"
	"strings"
)

// ParseOrZero converts a form value to a float64. Empty, non-numeric and
// non-finite values yield 0: an unparsable field contributes nothing to the
// footprint instead of rejecting the whole form.
//
// Both "." and "," are accepted as the decimal separator. When a "," is
// present it is the decimal separator and any "." groups thousands, so the
// output of FormatNumberBR parses back ("1.234,50" -> 1234.5).
func ParseOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// pt-BR input such as "12,5" or "1.234,5"
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return val
}

// Clamp restricts a value to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// nonNegative clamps v to [0, +Inf) and maps NaN to 0.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// percentToFraction clamps a 0-100 share and converts it to a 0-1 fraction.
func percentToFraction(percent float64) float64 {
	if math.IsNaN(percent) {
		return 0
	}
	return Clamp(percent, 0, PercentScale) / PercentScale
}

// roundTo rounds v to the given number of decimal places, half away from zero.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// FormatNumberBR formats n with two decimals using Brazilian Portuguese
// conventions: "." groups thousands and "," separates decimals
// (1234.5 -> "1.234,50").
func FormatNumberBR(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0,00"
	}

	s := strconv.FormatFloat(math.Abs(n), 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if n < 0 && s != "0.00" {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
