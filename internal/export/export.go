// Package export serializes computed metrics tables to delimited text
// files. Tables from multiple stations are concatenated explicitly, with a
// trailing Station label column identifying the origin of each row.
package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/hydromet/streamstats/internal/hydrostats"
)

const dateLayout = "2006-01-02"

// formatValue renders a metric for a delimited cell. NaN becomes an empty
// cell so downstream readers can distinguish "undefined" from zero.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTable(path string, comma rune, header []string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = comma

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAnnualMetrics writes the concatenated water-year metrics tables as a
// comma-delimited file.
func WriteAnnualMetrics(path string, results []hydrostats.StationResults) error {
	header := []string{
		"Date", "site_no", "Mean Flow", "Peak Flow", "Median Flow",
		"Coeff Var", "Skew", "Tqmean", "R-B Index", "7Q", "3xMedian",
		"Station",
	}

	var records [][]string
	for _, res := range results {
		for _, row := range res.Annual {
			records = append(records, []string{
				row.Start.Format(dateLayout),
				formatValue(row.SiteNo),
				formatValue(row.MeanFlow),
				formatValue(row.PeakFlow),
				formatValue(row.MedianFlow),
				formatValue(row.CoeffVar),
				formatValue(row.Skew),
				formatValue(row.Tqmean),
				formatValue(row.RBIndex),
				formatValue(row.SevenQ),
				formatValue(row.ThreeXMedian),
				res.Station,
			})
		}
	}
	return writeTable(path, ',', header, records)
}

// WriteMonthlyMetrics writes the concatenated monthly metrics tables as a
// comma-delimited file.
func WriteMonthlyMetrics(path string, results []hydrostats.StationResults) error {
	header := []string{
		"Date", "site_no", "Mean Flow", "Coeff Var", "Tqmean", "R-B Index",
		"Station",
	}

	var records [][]string
	for _, res := range results {
		for _, row := range res.Monthly {
			records = append(records, []string{
				row.Start.Format(dateLayout),
				formatValue(row.SiteNo),
				formatValue(row.MeanFlow),
				formatValue(row.CoeffVar),
				formatValue(row.Tqmean),
				formatValue(row.RBIndex),
				res.Station,
			})
		}
	}
	return writeTable(path, ',', header, records)
}

// WriteAnnualAverages writes one average row per station as a tab-delimited
// file.
func WriteAnnualAverages(path string, results []hydrostats.StationResults) error {
	header := []string{
		"site_no", "Mean Flow", "Peak Flow", "Median Flow", "Coeff Var",
		"Skew", "Tqmean", "R-B Index", "7Q", "3xMedian", "Station",
	}

	var records [][]string
	for _, res := range results {
		avg := res.AnnualAverage
		records = append(records, []string{
			formatValue(avg.SiteNo),
			formatValue(avg.MeanFlow),
			formatValue(avg.PeakFlow),
			formatValue(avg.MedianFlow),
			formatValue(avg.CoeffVar),
			formatValue(avg.Skew),
			formatValue(avg.Tqmean),
			formatValue(avg.RBIndex),
			formatValue(avg.SevenQ),
			formatValue(avg.ThreeXMedian),
			res.Station,
		})
	}
	return writeTable(path, '\t', header, records)
}

// WriteMonthlyAverages writes twelve water-year-ordered average rows per
// station as a tab-delimited file. The index column runs 1-12 over the
// water-year month sequence (1=October ... 12=September).
func WriteMonthlyAverages(path string, results []hydrostats.StationResults) error {
	header := []string{
		"Index", "Month", "site_no", "Mean Flow", "Coeff Var", "Tqmean",
		"R-B Index", "Station",
	}

	var records [][]string
	for _, res := range results {
		for i, avg := range res.MonthlyAverages {
			records = append(records, []string{
				strconv.Itoa(i + 1),
				avg.Month.String(),
				formatValue(avg.SiteNo),
				formatValue(avg.MeanFlow),
				formatValue(avg.CoeffVar),
				formatValue(avg.Tqmean),
				formatValue(avg.RBIndex),
				res.Station,
			})
		}
	}
	return writeTable(path, '\t', header, records)
}
