package hydrostats

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestMeanFlow(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple mean", []float64{2, 4, 6}, 4},
		{"ignores missing", []float64{2, math.NaN(), 4, math.NaN(), 6}, 4},
		{"single value", []float64{7.5}, 7.5},
		{"empty", []float64{}, math.NaN()},
		{"all missing", []float64{math.NaN(), math.NaN()}, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeanFlow(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPeakFlow(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"maximum", []float64{3, 9, 1}, 9},
		{"ignores missing", []float64{3, math.NaN(), 2}, 3},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeakFlow(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// A single present value is both the mean and the peak of its period.
func TestSingleValueMeanEqualsPeak(t *testing.T) {
	values := []float64{math.NaN(), 42.5, math.NaN()}
	if mean, peak := MeanFlow(values), PeakFlow(values); mean != peak || mean != 42.5 {
		t.Errorf("expected mean == peak == 42.5, got mean=%v peak=%v", mean, peak)
	}
}

func TestMedianFlow(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"odd count", []float64{5, 1, 3}, 3},
		{"even count midpoint", []float64{1, 2, 3, 4}, 2.5},
		{"skewed values", []float64{1, 1, 1, 1, 10}, 1},
		{"ignores missing", []float64{math.NaN(), 2, 8}, 5},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MedianFlow(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCoeffVar(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		// Sample stddev of {2,4,6} is 2, mean is 4.
		{"sample definition", []float64{2, 4, 6}, 50},
		{"constant series is zero", []float64{3, 3, 3}, 0},
		{"single value", []float64{5}, math.NaN()},
		{"zero mean", []float64{-1, 1}, math.NaN()},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoeffVar(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSkew(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"symmetric series", []float64{1, 2, 3}, 0},
		// mean=4, m2=18, m3=54, g1 = 54 / 18^1.5 = sqrt(2)/2
		{"right skewed", []float64{1, 1, 10}, math.Sqrt2 / 2},
		{"constant series", []float64{5, 5, 5}, math.NaN()},
		{"single value", []float64{3}, math.NaN()},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Skew(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTqmean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		// mean=2, only 3 exceeds it
		{"one third exceeds", []float64{1, 2, 3}, 1.0 / 3.0},
		{"constant never exceeds own mean", []float64{5, 5, 5}, 0},
		{"ignores missing", []float64{1, math.NaN(), 3}, 0.5},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tqmean(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTqmeanBounds(t *testing.T) {
	cases := [][]float64{
		{1},
		{1, 2},
		{0, 0, 0, 100},
		{3.2, 1.1, 4.7, 9.9, 2.3, 8.8, 0.4},
		{math.NaN(), 6, 6, 6, 12},
	}
	for _, values := range cases {
		got := Tqmean(values)
		if got < 0 || got > 1 {
			t.Errorf("Tqmean(%v) = %v, outside [0,1]", values, got)
		}
	}
}

func TestRBIndex(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		// path length |2-1| + |1-2| = 2, total volume 4
		{"basic ratio", []float64{1, 2, 1}, 0.5},
		{"constant series is zero", []float64{4, 4, 4}, 0},
		{"single value", []float64{9}, 0},
		{"zero total volume", []float64{0, 0, 0}, math.NaN()},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RBIndex(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// The R-B index is a ratio of flows, so uniform positive scaling of the
// period must not change it.
func TestRBIndexScaleInvariance(t *testing.T) {
	values := []float64{3.1, 7.4, 2.2, 9.6, 5.5, 4.1}
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v * 7.5
	}

	base := RBIndex(values)
	if math.Abs(RBIndex(scaled)-base) > epsilon {
		t.Errorf("expected scale-invariant index, got %v vs %v", RBIndex(scaled), base)
	}
}

func TestSevenDayLowFlow(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		// Lowest window is the seven values covering the dip: (6*10+1)/7.
		{"dip in steady flow", []float64{10, 10, 10, 10, 10, 10, 10, 1, 10, 10}, 61.0 / 7.0},
		{"exactly seven values", []float64{7, 7, 7, 7, 7, 7, 7}, 7},
		// Windows run over the filtered sequence, straddling the gap.
		{"gap straddled", []float64{10, math.NaN(), 10, 10, 10, 10, 10, 1}, 61.0 / 7.0},
		{"six values", []float64{1, 2, 3, 4, 5, 6}, math.NaN()},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SevenDayLowFlow(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// 7Q is the minimum of window averages, each of which is bounded above by
// the period maximum.
func TestSevenDayLowFlowNeverExceedsPeak(t *testing.T) {
	values := []float64{12, 18, 3, 44, 9, 27, 6, 15, 31, 2}
	if sevenQ, peak := SevenDayLowFlow(values), PeakFlow(values); sevenQ > peak {
		t.Errorf("7Q %v exceeds peak %v", sevenQ, peak)
	}
}

func TestExceedThreeTimesMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		// median=1, threshold=3, only the 10 exceeds it
		{"one exceedance", []float64{1, 1, 1, 1, 10}, 1},
		{"no exceedance", []float64{2, 2, 2}, 0},
		{"threshold is strict", []float64{1, 1, 3}, 0},
		{"ignores missing", []float64{1, math.NaN(), 1, 1, 1, 10}, 1},
		{"empty", nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExceedThreeTimesMedian(tt.values)
			if math.IsNaN(tt.expected) {
				if !math.IsNaN(got) {
					t.Errorf("expected NaN, got %v", got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
