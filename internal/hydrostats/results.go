package hydrostats

// StationResults bundles everything the pipeline derives for one station.
// It replaces the ad-hoc per-station lookup maps an orchestrator might
// otherwise carry: each station's tables travel together.
type StationResults struct {
	Station         string           `json:"station"`
	Annual          []AnnualRow      `json:"annual"`
	AnnualAverage   AnnualAverage    `json:"annual_average"`
	Monthly         []MonthlyRow     `json:"monthly"`
	MonthlyAverages []MonthlyAverage `json:"monthly_averages"`
}
