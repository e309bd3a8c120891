package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MarginStats summarizes the non-missing margins of a group
type MarginStats struct {
	Count  int
	Mean   float64
	Median float64
	P05    float64
	P95    float64
	Min    float64
	Max    float64
}

// DescribeMargins computes the margin statistics ignoring NaN values.
// With no finite input every statistic is NaN.
func DescribeMargins(values []float64) MarginStats {
	x := dropNaN(values)
	if len(x) == 0 {
		nan := math.NaN()
		return MarginStats{Mean: nan, Median: nan, P05: nan, P95: nan, Min: nan, Max: nan}
	}
	sort.Float64s(x)

	return MarginStats{
		Count:  len(x),
		Mean:   stat.Mean(x, nil),
		Median: Quantile(x, 0.5),
		P05:    Quantile(x, 0.05),
		P95:    Quantile(x, 0.95),
		Min:    floats.Min(x),
		Max:    floats.Max(x),
	}
}

// Quantile returns the p-quantile of sorted, NaN-free x by linear
// interpolation between the order statistics at h = (n-1)p.
// gonum's stat.Quantile offers only LinInterp, which places the order
// statistics at i/n and gives different results for small groups.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
