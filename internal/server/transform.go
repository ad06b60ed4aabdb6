package server

import (
	"math"

	"github.com/hydromet/streamstats/internal/hydrostats"
)

// Metric values can be NaN, which encoding/json refuses to marshal. The
// response types below carry pointers so NaN serializes as null.

type annualResponse struct {
	WaterYear    int      `json:"water_year"`
	Start        string   `json:"start"`
	SiteNo       *float64 `json:"site_no"`
	MeanFlow     *float64 `json:"mean_flow"`
	PeakFlow     *float64 `json:"peak_flow"`
	MedianFlow   *float64 `json:"median_flow"`
	CoeffVar     *float64 `json:"coeff_var"`
	Skew         *float64 `json:"skew"`
	Tqmean       *float64 `json:"tqmean"`
	RBIndex      *float64 `json:"rb_index"`
	SevenQ       *float64 `json:"seven_q"`
	ThreeXMedian *float64 `json:"three_x_median"`
}

type monthlyResponse struct {
	Start    string   `json:"start"`
	SiteNo   *float64 `json:"site_no"`
	MeanFlow *float64 `json:"mean_flow"`
	CoeffVar *float64 `json:"coeff_var"`
	Tqmean   *float64 `json:"tqmean"`
	RBIndex  *float64 `json:"rb_index"`
}

type annualAverageResponse struct {
	SiteNo       *float64 `json:"site_no"`
	MeanFlow     *float64 `json:"mean_flow"`
	PeakFlow     *float64 `json:"peak_flow"`
	MedianFlow   *float64 `json:"median_flow"`
	CoeffVar     *float64 `json:"coeff_var"`
	Skew         *float64 `json:"skew"`
	Tqmean       *float64 `json:"tqmean"`
	RBIndex      *float64 `json:"rb_index"`
	SevenQ       *float64 `json:"seven_q"`
	ThreeXMedian *float64 `json:"three_x_median"`
}

type monthlyAverageResponse struct {
	Month    string   `json:"month"`
	SiteNo   *float64 `json:"site_no"`
	MeanFlow *float64 `json:"mean_flow"`
	CoeffVar *float64 `json:"coeff_var"`
	Tqmean   *float64 `json:"tqmean"`
	RBIndex  *float64 `json:"rb_index"`
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

const dateLayout = "2006-01-02"

func toAnnualResponses(rows []hydrostats.AnnualRow) []annualResponse {
	out := make([]annualResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, annualResponse{
			WaterYear:    row.WaterYear,
			Start:        row.Start.Format(dateLayout),
			SiteNo:       optional(row.SiteNo),
			MeanFlow:     optional(row.MeanFlow),
			PeakFlow:     optional(row.PeakFlow),
			MedianFlow:   optional(row.MedianFlow),
			CoeffVar:     optional(row.CoeffVar),
			Skew:         optional(row.Skew),
			Tqmean:       optional(row.Tqmean),
			RBIndex:      optional(row.RBIndex),
			SevenQ:       optional(row.SevenQ),
			ThreeXMedian: optional(row.ThreeXMedian),
		})
	}
	return out
}

func toMonthlyResponses(rows []hydrostats.MonthlyRow) []monthlyResponse {
	out := make([]monthlyResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, monthlyResponse{
			Start:    row.Start.Format(dateLayout),
			SiteNo:   optional(row.SiteNo),
			MeanFlow: optional(row.MeanFlow),
			CoeffVar: optional(row.CoeffVar),
			Tqmean:   optional(row.Tqmean),
			RBIndex:  optional(row.RBIndex),
		})
	}
	return out
}

func toAnnualAverageResponse(avg hydrostats.AnnualAverage) annualAverageResponse {
	return annualAverageResponse{
		SiteNo:       optional(avg.SiteNo),
		MeanFlow:     optional(avg.MeanFlow),
		PeakFlow:     optional(avg.PeakFlow),
		MedianFlow:   optional(avg.MedianFlow),
		CoeffVar:     optional(avg.CoeffVar),
		Skew:         optional(avg.Skew),
		Tqmean:       optional(avg.Tqmean),
		RBIndex:      optional(avg.RBIndex),
		SevenQ:       optional(avg.SevenQ),
		ThreeXMedian: optional(avg.ThreeXMedian),
	}
}

func toMonthlyAverageResponses(avgs []hydrostats.MonthlyAverage) []monthlyAverageResponse {
	out := make([]monthlyAverageResponse, 0, len(avgs))
	for _, avg := range avgs {
		out = append(out, monthlyAverageResponse{
			Month:    avg.Month.String(),
			SiteNo:   optional(avg.SiteNo),
			MeanFlow: optional(avg.MeanFlow),
			CoeffVar: optional(avg.CoeffVar),
			Tqmean:   optional(avg.Tqmean),
			RBIndex:  optional(avg.RBIndex),
		})
	}
	return out
}
