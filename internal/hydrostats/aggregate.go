package hydrostats

import (
	"math"
	"time"

	"github.com/hydromet/streamstats/internal/timeseries"
)

// AnnualRow holds the water-year metrics for one station and one water year.
type AnnualRow struct {
	WaterYear    int       `json:"water_year"`
	Start        time.Time `json:"start"`
	SiteNo       float64   `json:"site_no"`
	MeanFlow     float64   `json:"mean_flow"`
	PeakFlow     float64   `json:"peak_flow"`
	MedianFlow   float64   `json:"median_flow"`
	CoeffVar     float64   `json:"coeff_var"`
	Skew         float64   `json:"skew"`
	Tqmean       float64   `json:"tqmean"`
	RBIndex      float64   `json:"rb_index"`
	SevenQ       float64   `json:"seven_q"`
	ThreeXMedian float64   `json:"three_x_median"`
}

// MonthlyRow holds the reduced metric set for one station and one calendar
// month.
type MonthlyRow struct {
	Start    time.Time `json:"start"`
	SiteNo   float64   `json:"site_no"`
	MeanFlow float64   `json:"mean_flow"`
	CoeffVar float64   `json:"coeff_var"`
	Tqmean   float64   `json:"tqmean"`
	RBIndex  float64   `json:"rb_index"`
}

// WaterYear returns the water year containing d. Water years run October 1
// through September 30 and are labeled by the calendar year in which they
// end, so Oct 1 1999 - Sep 30 2000 is water year 2000.
func WaterYear(d time.Time) int {
	if d.Month() >= time.October {
		return d.Year() + 1
	}
	return d.Year()
}

// WaterYearStart returns the first day (October 1) of the given water year.
func WaterYearStart(wy int) time.Time {
	return time.Date(wy-1, time.October, 1, 0, 0, 0, 0, time.UTC)
}

// period collects the discharge values and minimum site number seen within
// one aggregation window.
type period struct {
	discharges []float64
	siteNo     float64
}

func newPeriod() *period {
	return &period{siteNo: math.NaN()}
}

func (p *period) add(obs timeseries.Observation) {
	p.discharges = append(p.discharges, obs.Discharge)
	// Stations are not expected to change mid-period; the minimum is a
	// deterministic tiebreak if they do.
	if !math.IsNaN(obs.SiteNo) && (math.IsNaN(p.siteNo) || obs.SiteNo < p.siteNo) {
		p.siteNo = obs.SiteNo
	}
}

// AnnualStatistics partitions the series into water years and computes the
// full metric set for each. One row is emitted per water year from the first
// to the last touched by the series, in chronological order; a water year
// with no usable observations still yields a row with NaN metrics.
func AnnualStatistics(ts *timeseries.TimeSeries) []AnnualRow {
	if ts.Len() == 0 {
		return nil
	}

	periods := make(map[int]*period)
	for _, obs := range ts.Observations {
		wy := WaterYear(obs.Date)
		p, ok := periods[wy]
		if !ok {
			p = newPeriod()
			periods[wy] = p
		}
		p.add(obs)
	}

	first, last := ts.Span()
	firstWY, lastWY := WaterYear(first), WaterYear(last)

	rows := make([]AnnualRow, 0, lastWY-firstWY+1)
	for wy := firstWY; wy <= lastWY; wy++ {
		p := periods[wy]
		if p == nil {
			p = newPeriod()
		}
		rows = append(rows, AnnualRow{
			WaterYear:    wy,
			Start:        WaterYearStart(wy),
			SiteNo:       p.siteNo,
			MeanFlow:     MeanFlow(p.discharges),
			PeakFlow:     PeakFlow(p.discharges),
			MedianFlow:   MedianFlow(p.discharges),
			CoeffVar:     CoeffVar(p.discharges),
			Skew:         Skew(p.discharges),
			Tqmean:       Tqmean(p.discharges),
			RBIndex:      RBIndex(p.discharges),
			SevenQ:       SevenDayLowFlow(p.discharges),
			ThreeXMedian: ExceedThreeTimesMedian(p.discharges),
		})
	}
	return rows
}

// MonthlyStatistics partitions the series into calendar months and computes
// the monthly metric subset for each, one row per month from the first to
// the last touched by the series, in chronological order.
func MonthlyStatistics(ts *timeseries.TimeSeries) []MonthlyRow {
	if ts.Len() == 0 {
		return nil
	}

	periods := make(map[time.Time]*period)
	for _, obs := range ts.Observations {
		m := monthStart(obs.Date)
		p, ok := periods[m]
		if !ok {
			p = newPeriod()
			periods[m] = p
		}
		p.add(obs)
	}

	first, last := ts.Span()
	var rows []MonthlyRow
	for m := monthStart(first); !m.After(monthStart(last)); m = m.AddDate(0, 1, 0) {
		p := periods[m]
		if p == nil {
			p = newPeriod()
		}
		rows = append(rows, MonthlyRow{
			Start:    m,
			SiteNo:   p.siteNo,
			MeanFlow: MeanFlow(p.discharges),
			CoeffVar: CoeffVar(p.discharges),
			Tqmean:   Tqmean(p.discharges),
			RBIndex:  RBIndex(p.discharges),
		})
	}
	return rows
}

func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
