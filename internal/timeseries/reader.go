package timeseries

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// noDataMarkers are non-numeric discharge tokens the USGS uses to flag days
// where the gauge could not report (e.g. equipment failure). They parse to
// an absent value rather than an error.
var noDataMarkers = map[string]bool{
	"Eqp": true,
}

const dateLayout = "2006-01-02"

// ReadFile parses a USGS RDB daily-discharge file into a TimeSeries and
// returns it along with the count of absent discharge values.
//
// The format is whitespace-delimited with '#' comment lines, followed by a
// column-header line and a field-format line (both skipped), then one record
// per day: agency_cd, site_no, date, discharge, quality flag. An empty or
// recognized no-data discharge field becomes NaN; any other non-numeric
// discharge token is an error.
func ReadFile(filename, siteName string) (*TimeSeries, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open gauge file: %w", err)
	}
	defer file.Close()

	ts := &TimeSeries{SiteName: siteName}

	scanner := bufio.NewScanner(file)
	headerLines := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Column-header line and field-format line precede the records.
		if headerLines < 2 {
			headerLines++
			continue
		}

		obs, err := parseRecord(line)
		if err != nil {
			return nil, 0, fmt.Errorf("%s line %d: %w", filename, lineNo, err)
		}
		ts.Observations = append(ts.Observations, obs)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read gauge file: %w", err)
	}

	return ts, ts.MissingCount(), nil
}

func parseRecord(line string) (Observation, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 || len(fields) > 5 {
		return Observation{}, fmt.Errorf("malformed record %q", line)
	}

	obs := Observation{
		AgencyCode: fields[0],
		Discharge:  math.NaN(),
	}

	siteNo, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Observation{}, fmt.Errorf("bad site number %q: %w", fields[1], err)
	}
	obs.SiteNo = siteNo

	date, err := time.Parse(dateLayout, fields[2])
	if err != nil {
		return Observation{}, fmt.Errorf("bad date %q: %w", fields[2], err)
	}
	obs.Date = date

	// A four-field record has no discharge value at all; the last field is
	// the quality flag either way.
	obs.Quality = fields[len(fields)-1]
	if len(fields) == 5 {
		raw := fields[3]
		if !noDataMarkers[raw] {
			discharge, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Observation{}, fmt.Errorf("bad discharge %q: %w", raw, err)
			}
			obs.Discharge = discharge
		}
	}

	return obs, nil
}
