// Command streamstats derives descriptive statistics from daily streamflow
// records. For each configured gauging station it reads the raw USGS daily
// values file, clips the series to the common analysis window, computes
// water-year and monthly flow metrics plus their multi-year averages, and
// writes the combined tables as delimited text files. Results can also be
// archived to SQLite and browsed over a local HTTP API.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/hydromet/streamstats/internal/export"
	"github.com/hydromet/streamstats/internal/hydrostats"
	"github.com/hydromet/streamstats/internal/log"
	"github.com/hydromet/streamstats/internal/timeseries"
	"github.com/hydromet/streamstats/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("error reading config file %s: %v", *cfgFile, err)
	}

	results := make([]hydrostats.StationResults, 0, len(cfg.Stations))
	for _, station := range cfg.Stations {
		res, err := processStation(station, cfg)
		if err != nil {
			log.Fatalf("error processing station %s: %v", station.Name, err)
		}
		results = append(results, res)
	}

	if err := writeTables(cfg.Output.Directory, results); err != nil {
		log.Fatalf("error writing output tables: %v", err)
	}

	if cfg.Output.Archive != "" {
		if err := archiveRun(cfg, results); err != nil {
			log.Fatalf("error archiving run: %v", err)
		}
	}

	if cfg.Output.Listen != "" {
		if err := serveResults(cfg.Output.Listen, results); err != nil {
			log.Fatalf("results server failed: %v", err)
		}
	}
}

// processStation runs the full pipeline for one station: read, clip,
// aggregate, average.
func processStation(station config.Station, cfg *config.Config) (hydrostats.StationResults, error) {
	log.Infof("working on %s", station.Name)

	ts, missing, err := timeseries.ReadFile(station.File, station.Name)
	if err != nil {
		return hydrostats.StationResults{}, err
	}
	first, last := ts.Span()
	log.Infow("raw data loaded",
		"station", station.Name,
		"observations", ts.Len(),
		"first", first.Format("2006-01-02"),
		"last", last.Format("2006-01-02"),
		"missing", missing,
	)

	clipped, missing := ts.Clip(cfg.StartDate, cfg.EndDate)
	log.Infow("clipped to analysis window",
		"station", station.Name,
		"observations", clipped.Len(),
		"start", cfg.Analysis.Start,
		"end", cfg.Analysis.End,
		"missing", missing,
	)

	annual := hydrostats.AnnualStatistics(clipped)
	annualAvg := hydrostats.AnnualAverages(annual)
	monthly := hydrostats.MonthlyStatistics(clipped)
	monthlyAvg := hydrostats.MonthlyAverages(monthly)

	log.Infow("water year summary",
		"station", station.Name,
		"water_years", len(annual),
		"mean_flow", annualAvg.MeanFlow,
		"peak_flow", annualAvg.PeakFlow,
		"median_flow", annualAvg.MedianFlow,
		"coeff_var", annualAvg.CoeffVar,
		"tqmean", annualAvg.Tqmean,
		"rb_index", annualAvg.RBIndex,
		"seven_q", annualAvg.SevenQ,
	)

	return hydrostats.StationResults{
		Station:         station.Name,
		Annual:          annual,
		AnnualAverage:   annualAvg,
		Monthly:         monthly,
		MonthlyAverages: monthlyAvg,
	}, nil
}

func writeTables(dir string, results []hydrostats.StationResults) error {
	tables := []struct {
		name  string
		write func(string, []hydrostats.StationResults) error
	}{
		{"Annual_Metrics.csv", export.WriteAnnualMetrics},
		{"Monthly_Metrics.csv", export.WriteMonthlyMetrics},
		{"Average_Annual_Metrics.txt", export.WriteAnnualAverages},
		{"Average_Monthly_Metrics.txt", export.WriteMonthlyAverages},
	}

	for _, table := range tables {
		path := filepath.Join(dir, table.name)
		if err := table.write(path, results); err != nil {
			return err
		}
		log.Infof("wrote %s", path)
	}
	return nil
}
