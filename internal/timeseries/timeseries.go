// Package timeseries provides the daily streamflow series container and the
// USGS RDB daily-values reader. A series holds one observation per calendar
// day; days with no usable discharge measurement carry NaN.
package timeseries

import (
	"math"
	"time"
)

// Observation is a single daily gauge reading.
type Observation struct {
	Date       time.Time
	AgencyCode string
	SiteNo     float64 // NaN when unknown
	Discharge  float64 // cubic feet per second, NaN when absent
	Quality    string
}

// TimeSeries is an ordered daily discharge record for one gauging station.
// Dates are strictly increasing and daily-complete within [Start, End];
// missing measurements are represented as NaN discharge, not missing rows.
// The series is not mutated after construction.
type TimeSeries struct {
	SiteName     string
	Observations []Observation
}

// Len returns the number of daily observations.
func (ts *TimeSeries) Len() int {
	return len(ts.Observations)
}

// Span returns the first and last observation dates. Zero times when empty.
func (ts *TimeSeries) Span() (start, end time.Time) {
	if len(ts.Observations) == 0 {
		return time.Time{}, time.Time{}
	}
	return ts.Observations[0].Date, ts.Observations[len(ts.Observations)-1].Date
}

// MissingCount returns the number of observations with absent discharge.
func (ts *TimeSeries) MissingCount() int {
	missing := 0
	for _, obs := range ts.Observations {
		if math.IsNaN(obs.Discharge) {
			missing++
		}
	}
	return missing
}

// Clip restricts the series to the inclusive [start, end] date range and
// returns the sub-series along with the count of absent discharge values
// inside the range. The receiver is not modified.
func (ts *TimeSeries) Clip(start, end time.Time) (*TimeSeries, int) {
	clipped := &TimeSeries{SiteName: ts.SiteName}

	for _, obs := range ts.Observations {
		if obs.Date.Before(start) || obs.Date.After(end) {
			continue
		}
		clipped.Observations = append(clipped.Observations, obs)
	}

	return clipped, clipped.MissingCount()
}
