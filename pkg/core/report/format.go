// Package report renders analysis reports: the six-panel PDF bar chart,
// a Markdown/HTML summary and a plain-text table for terminals.
package report

import (
	"math"
	"strconv"

	"financial_analyzer/pkg/core/calc"
)

// Suffix thresholds. Values are in the page's reporting unit.
const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// FormatWithSuffix abbreviates large values with Cr, L or K at one decimal
// ("1.5Cr", "2.0L", "12.3K"). Smaller values are printed as is.
func FormatWithSuffix(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return "n/a"
	case v >= crore:
		return oneDecimal(v/crore) + "Cr"
	case v >= lakh:
		return oneDecimal(v/lakh) + "L"
	case v >= thousand:
		return oneDecimal(v/thousand) + "K"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func oneDecimal(v float64) string {
	return calc.Round(v, 1).StringFixed(1)
}

// formatRatio prints a rounded ratio, or "n/a" when absent.
func formatRatio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
