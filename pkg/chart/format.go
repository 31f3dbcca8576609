package chart

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// compactThreshold is the magnitude from which compact labels abbreviate.
const compactThreshold = 1000

// FormatTick renders a tick value. Non-compact labels use thousands
// separators (1,500,000); compact labels abbreviate with k, M, B and T
// suffixes (1.5M).
func FormatTick(v float64, compact bool) string {
	if v == 0 {
		return "0"
	}
	if !compact || math.Abs(v) < compactThreshold {
		return humanize.Commaf(v)
	}
	value, prefix := humanize.ComputeSI(v)
	return humanize.FtoaWithDigits(value, 1) + siSuffix(prefix)
}

// siSuffix maps SI prefixes to the short-scale suffixes used on charts.
func siSuffix(prefix string) string {
	switch prefix {
	case "G":
		return "B"
	case "k", "M", "T":
		return prefix
	}
	return strings.ToUpper(prefix)
}
