// Package hydrostats computes descriptive streamflow statistics: per-period
// flow metrics over water-year and calendar-month windows, and their
// multi-year averages. All metrics treat NaN as "no measurement" and filter
// it out before computing; a period with too few usable values for a metric
// yields NaN rather than an error.
package hydrostats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// present returns the values with NaN entries removed, preserving order.
func present(values []float64) []float64 {
	filtered := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// MeanFlow returns the arithmetic mean discharge of the period.
func MeanFlow(values []float64) float64 {
	q := present(values)
	if len(q) == 0 {
		return math.NaN()
	}
	return stat.Mean(q, nil)
}

// PeakFlow returns the maximum discharge of the period.
func PeakFlow(values []float64) float64 {
	q := present(values)
	if len(q) == 0 {
		return math.NaN()
	}
	return floats.Max(q)
}

// MedianFlow returns the median discharge of the period, using the midpoint
// of the two central order statistics when the count is even.
func MedianFlow(values []float64) float64 {
	q := present(values)
	if len(q) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(q))
	copy(sorted, q)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// CoeffVar returns the coefficient of variation as a percentage: the sample
// (N-1) standard deviation divided by the mean, times 100. NaN when fewer
// than two values are present or the mean is zero.
func CoeffVar(values []float64) float64 {
	q := present(values)
	if len(q) < 2 {
		return math.NaN()
	}
	mean := stat.Mean(q, nil)
	if mean == 0 {
		return math.NaN()
	}
	return stat.StdDev(q, nil) / mean * 100
}

// Skew returns the Fisher-Pearson skewness coefficient g1 = m3 / m2^1.5,
// computed from population (biased) central moments. A constant or empty
// period has zero second moment and yields NaN.
func Skew(values []float64) float64 {
	q := present(values)
	n := float64(len(q))
	if n == 0 {
		return math.NaN()
	}

	mean := stat.Mean(q, nil)
	var m2, m3 float64
	for _, v := range q {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n

	if m2 == 0 {
		return math.NaN()
	}
	return m3 / math.Pow(m2, 1.5)
}

// Tqmean returns the fraction of days on which discharge strictly exceeds
// the period's own mean discharge. The result lies in [0, 1]; NaN when the
// period has no present values.
func Tqmean(values []float64) float64 {
	q := present(values)
	if len(q) == 0 {
		return math.NaN()
	}

	mean := stat.Mean(q, nil)
	exceed := 0
	for _, v := range q {
		if v > mean {
			exceed++
		}
	}
	return float64(exceed) / float64(len(q))
}

// RBIndex returns the Richards-Baker flashiness index: the sum of absolute
// day-to-day discharge changes divided by the total discharge volume. The
// first value contributes no change term. NaN when the period has no present
// values or zero total volume.
func RBIndex(values []float64) float64 {
	q := present(values)
	if len(q) == 0 {
		return math.NaN()
	}

	total := floats.Sum(q)
	if total == 0 {
		return math.NaN()
	}

	var pathLength float64
	for i := 1; i < len(q); i++ {
		pathLength += math.Abs(q[i] - q[i-1])
	}
	return pathLength / total
}

// sevenDayWindow is the moving-average width for the 7Q low-flow statistic.
const sevenDayWindow = 7

// SevenDayLowFlow returns 7Q: the minimum 7-value moving average of the
// period's present discharge values. Windows run over consecutive entries of
// the NaN-filtered sequence, so a window may straddle a gap left by a
// discarded day. NaN when fewer than seven values are present.
func SevenDayLowFlow(values []float64) float64 {
	q := present(values)
	if len(q) < sevenDayWindow {
		return math.NaN()
	}

	// Maintain a running window sum rather than recomputing each average.
	var windowSum float64
	for i := 0; i < sevenDayWindow; i++ {
		windowSum += q[i]
	}
	lowest := windowSum / sevenDayWindow

	for i := sevenDayWindow; i < len(q); i++ {
		windowSum += q[i] - q[i-sevenDayWindow]
		if avg := windowSum / sevenDayWindow; avg < lowest {
			lowest = avg
		}
	}
	return lowest
}

// ExceedThreeTimesMedian returns the number of days with discharge strictly
// greater than three times the period's median discharge, as a float64 so an
// empty period can degrade to NaN like the other metrics.
func ExceedThreeTimesMedian(values []float64) float64 {
	q := present(values)
	if len(q) == 0 {
		return math.NaN()
	}

	threshold := MedianFlow(q) * 3
	count := 0
	for _, v := range q {
		if v > threshold {
			count++
		}
	}
	return float64(count)
}
