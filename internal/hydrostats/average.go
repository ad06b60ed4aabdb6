package hydrostats

import (
	"math"
	"time"
)

// AnnualAverage is the column-wise mean of an annual metrics table across
// all water years. Columns with no defined (non-NaN) entries stay NaN.
type AnnualAverage struct {
	SiteNo       float64 `json:"site_no"`
	MeanFlow     float64 `json:"mean_flow"`
	PeakFlow     float64 `json:"peak_flow"`
	MedianFlow   float64 `json:"median_flow"`
	CoeffVar     float64 `json:"coeff_var"`
	Skew         float64 `json:"skew"`
	Tqmean       float64 `json:"tqmean"`
	RBIndex      float64 `json:"rb_index"`
	SevenQ       float64 `json:"seven_q"`
	ThreeXMedian float64 `json:"three_x_median"`
}

// MonthlyAverage is the multi-year mean of one calendar month's metrics.
type MonthlyAverage struct {
	Month    time.Month `json:"month"`
	SiteNo   float64    `json:"site_no"`
	MeanFlow float64    `json:"mean_flow"`
	CoeffVar float64    `json:"coeff_var"`
	Tqmean   float64    `json:"tqmean"`
	RBIndex  float64    `json:"rb_index"`
}

// waterYearMonths is the month ordering used for monthly summaries, aligned
// with the October-September water year.
var waterYearMonths = [12]time.Month{
	time.October, time.November, time.December,
	time.January, time.February, time.March,
	time.April, time.May, time.June,
	time.July, time.August, time.September,
}

// nanMean returns the mean of the non-NaN entries, or NaN when there are
// none. NaN entries are excluded from the denominator as well.
func nanMean(values []float64) float64 {
	var sum float64
	count := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// AnnualAverages collapses a water-year metrics table into a single average
// row. Each column's mean is taken only over the water years where that
// column is defined.
func AnnualAverages(rows []AnnualRow) AnnualAverage {
	columns := make(map[string][]float64, 10)
	for _, row := range rows {
		columns["site_no"] = append(columns["site_no"], row.SiteNo)
		columns["mean"] = append(columns["mean"], row.MeanFlow)
		columns["peak"] = append(columns["peak"], row.PeakFlow)
		columns["median"] = append(columns["median"], row.MedianFlow)
		columns["cv"] = append(columns["cv"], row.CoeffVar)
		columns["skew"] = append(columns["skew"], row.Skew)
		columns["tqmean"] = append(columns["tqmean"], row.Tqmean)
		columns["rb"] = append(columns["rb"], row.RBIndex)
		columns["7q"] = append(columns["7q"], row.SevenQ)
		columns["3xmedian"] = append(columns["3xmedian"], row.ThreeXMedian)
	}

	return AnnualAverage{
		SiteNo:       nanMean(columns["site_no"]),
		MeanFlow:     nanMean(columns["mean"]),
		PeakFlow:     nanMean(columns["peak"]),
		MedianFlow:   nanMean(columns["median"]),
		CoeffVar:     nanMean(columns["cv"]),
		Skew:         nanMean(columns["skew"]),
		Tqmean:       nanMean(columns["tqmean"]),
		RBIndex:      nanMean(columns["rb"]),
		SevenQ:       nanMean(columns["7q"]),
		ThreeXMedian: nanMean(columns["3xmedian"]),
	}
}

// MonthlyAverages groups a monthly metrics table by calendar month across
// years and returns exactly twelve average rows in water-year month order
// (October first, September last). Months absent from the input produce a
// row with NaN metrics.
func MonthlyAverages(rows []MonthlyRow) []MonthlyAverage {
	type group struct {
		siteNo, mean, cv, tqmean, rb []float64
	}
	groups := make(map[time.Month]*group, 12)

	for _, row := range rows {
		m := row.Start.Month()
		g, ok := groups[m]
		if !ok {
			g = &group{}
			groups[m] = g
		}
		g.siteNo = append(g.siteNo, row.SiteNo)
		g.mean = append(g.mean, row.MeanFlow)
		g.cv = append(g.cv, row.CoeffVar)
		g.tqmean = append(g.tqmean, row.Tqmean)
		g.rb = append(g.rb, row.RBIndex)
	}

	averages := make([]MonthlyAverage, 0, 12)
	for _, m := range waterYearMonths {
		g := groups[m]
		if g == nil {
			g = &group{}
		}
		averages = append(averages, MonthlyAverage{
			Month:    m,
			SiteNo:   nanMean(g.siteNo),
			MeanFlow: nanMean(g.mean),
			CoeffVar: nanMean(g.cv),
			Tqmean:   nanMean(g.tqmean),
			RBIndex:  nanMean(g.rb),
		})
	}
	return averages
}
