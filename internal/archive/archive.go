// Package archive persists computed metrics tables to a SQLite database so
// successive runs can be compared without re-deriving them from the raw
// gauge files. Each run is stamped with a UUID and its analysis window.
package archive

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hydromet/streamstats/internal/hydrostats"
)

// Archive wraps the SQLite results database.
type Archive struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  TIMESTAMP NOT NULL,
	start_date  TEXT NOT NULL,
	end_date    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS annual_metrics (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	station        TEXT NOT NULL,
	water_year     INTEGER NOT NULL,
	site_no        REAL,
	mean_flow      REAL,
	peak_flow      REAL,
	median_flow    REAL,
	coeff_var      REAL,
	skew           REAL,
	tqmean         REAL,
	rb_index       REAL,
	seven_q        REAL,
	three_x_median REAL
);
CREATE TABLE IF NOT EXISTS monthly_metrics (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	station     TEXT NOT NULL,
	month_start TEXT NOT NULL,
	site_no     REAL,
	mean_flow   REAL,
	coeff_var   REAL,
	tqmean      REAL,
	rb_index    REAL
);
CREATE TABLE IF NOT EXISTS annual_averages (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	station        TEXT NOT NULL,
	site_no        REAL,
	mean_flow      REAL,
	peak_flow      REAL,
	median_flow    REAL,
	coeff_var      REAL,
	skew           REAL,
	tqmean         REAL,
	rb_index       REAL,
	seven_q        REAL,
	three_x_median REAL
);
CREATE TABLE IF NOT EXISTS monthly_averages (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	station   TEXT NOT NULL,
	month     INTEGER NOT NULL,
	site_no   REAL,
	mean_flow REAL,
	coeff_var REAL,
	tqmean    REAL,
	rb_index  REAL
);
`

// Open opens (creating if necessary) a results archive at the given path.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping archive database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// nullable maps NaN to NULL for storage; every other value passes through.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// StoreRun records the analysis window and all per-station tables under a
// fresh run ID, atomically, and returns the run ID.
func (a *Archive) StoreRun(start, end time.Time, results []hydrostats.StationResults) (string, error) {
	runID := uuid.NewString()

	tx, err := a.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, created_at, start_date, end_date) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UTC(), start.Format("2006-01-02"), end.Format("2006-01-02"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	annualStmt, err := tx.Prepare(
		`INSERT INTO annual_metrics (run_id, station, water_year, site_no,
		 mean_flow, peak_flow, median_flow, coeff_var, skew, tqmean,
		 rb_index, seven_q, three_x_median)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("failed to prepare annual insert: %w", err)
	}
	defer annualStmt.Close()

	monthlyStmt, err := tx.Prepare(
		`INSERT INTO monthly_metrics (run_id, station, month_start, site_no,
		 mean_flow, coeff_var, tqmean, rb_index)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("failed to prepare monthly insert: %w", err)
	}
	defer monthlyStmt.Close()

	for _, res := range results {
		for _, row := range res.Annual {
			_, err = annualStmt.Exec(runID, res.Station, row.WaterYear,
				nullable(row.SiteNo), nullable(row.MeanFlow),
				nullable(row.PeakFlow), nullable(row.MedianFlow),
				nullable(row.CoeffVar), nullable(row.Skew),
				nullable(row.Tqmean), nullable(row.RBIndex),
				nullable(row.SevenQ), nullable(row.ThreeXMedian))
			if err != nil {
				return "", fmt.Errorf("failed to insert annual row: %w", err)
			}
		}

		for _, row := range res.Monthly {
			_, err = monthlyStmt.Exec(runID, res.Station,
				row.Start.Format("2006-01-02"), nullable(row.SiteNo),
				nullable(row.MeanFlow), nullable(row.CoeffVar),
				nullable(row.Tqmean), nullable(row.RBIndex))
			if err != nil {
				return "", fmt.Errorf("failed to insert monthly row: %w", err)
			}
		}

		avg := res.AnnualAverage
		_, err = tx.Exec(
			`INSERT INTO annual_averages (run_id, station, site_no, mean_flow,
			 peak_flow, median_flow, coeff_var, skew, tqmean, rb_index,
			 seven_q, three_x_median)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, res.Station, nullable(avg.SiteNo), nullable(avg.MeanFlow),
			nullable(avg.PeakFlow), nullable(avg.MedianFlow),
			nullable(avg.CoeffVar), nullable(avg.Skew), nullable(avg.Tqmean),
			nullable(avg.RBIndex), nullable(avg.SevenQ),
			nullable(avg.ThreeXMedian),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert annual average: %w", err)
		}

		for _, mavg := range res.MonthlyAverages {
			_, err = tx.Exec(
				`INSERT INTO monthly_averages (run_id, station, month, site_no,
				 mean_flow, coeff_var, tqmean, rb_index)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, res.Station, int(mavg.Month), nullable(mavg.SiteNo),
				nullable(mavg.MeanFlow), nullable(mavg.CoeffVar),
				nullable(mavg.Tqmean), nullable(mavg.RBIndex),
			)
			if err != nil {
				return "", fmt.Errorf("failed to insert monthly average: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit archive transaction: %w", err)
	}
	return runID, nil
}

// RunCount returns the number of archived runs.
func (a *Archive) RunCount() (int, error) {
	var count int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
