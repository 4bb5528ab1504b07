// Package airports reads and writes airport reference data. The import
// format is the public OurAirports airports.csv dump.
package airports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

const feetToMeters = 0.3048

// ErrMissingColumn is returned when a required CSV header is absent.
var ErrMissingColumn = errors.New("missing csv column")

var requiredColumns = []string{"iata_code", "type", "name", "latitude_deg", "longitude_deg"}

// ParseResult is the outcome of reading an OurAirports file.
type ParseResult struct {
	Airports []models.Airport
	Rows     int
	Skipped  int
}

// ParseOurAirports reads OurAirports CSV data and keeps rows usable as
// trip endpoints: a three letter IATA code, a fixed-wing airport type that
// is not closed, and valid non-(0,0) coordinates.
func ParseOurAirports(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	col := columnIndex(header)
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	result := &ParseResult{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", result.Rows+2, err)
		}
		result.Rows++

		a, ok := parseRow(record, col)
		if !ok {
			result.Skipped++
			continue
		}
		result.Airports = append(result.Airports, a)
	}

	return result, nil
}

func parseRow(record []string, col map[string]int) (models.Airport, bool) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	iata := strings.ToUpper(get("iata_code"))
	if len(iata) != 3 {
		return models.Airport{}, false
	}

	airportType := strings.ToLower(get("type"))
	switch airportType {
	case models.AirportTypeHeliport, models.AirportTypeSeaplaneBase, models.AirportTypeClosed:
		return models.Airport{}, false
	}

	lat, err1 := strconv.ParseFloat(get("latitude_deg"), 64)
	lon, err2 := strconv.ParseFloat(get("longitude_deg"), 64)
	if err1 != nil || err2 != nil {
		return models.Airport{}, false
	}
	if lat == 0 && lon == 0 {
		return models.Airport{}, false
	}
	if _, err := spatial.NewGeoPoint(lat, lon); err != nil {
		return models.Airport{}, false
	}

	icao := get("icao_code")
	if icao == "" {
		icao = get("gps_code")
	}

	var altitude float64
	if ft, err := strconv.ParseFloat(get("elevation_ft"), 64); err == nil {
		altitude = ft * feetToMeters
	}

	return models.Airport{
		IATA:             iata,
		ICAO:             icao,
		Name:             get("name"),
		City:             get("municipality"),
		Country:          strings.ToUpper(get("iso_country")),
		Latitude:         lat,
		Longitude:        lon,
		AltitudeM:        altitude,
		Type:             airportType,
		ScheduledService: strings.EqualFold(get("scheduled_service"), "yes"),
	}, true
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		// Excel exports prepend a BOM
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		col[strings.ToLower(name)] = i
	}
	return col
}

// Analysis summarizes an OurAirports file without filtering it.
type Analysis struct {
	Rows          int            `json:"rows"`
	WithIATA      int            `json:"with_iata"`
	WithScheduled int            `json:"with_scheduled"`
	Types         map[string]int `json:"types"`
	Countries     map[string]int `json:"countries"`
}

// Analyze counts rows by type and country.
func Analyze(r io.Reader) (*Analysis, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	col := columnIndex(header)

	a := &Analysis{Types: map[string]int{}, Countries: map[string]int{}}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", a.Rows+2, err)
		}
		a.Rows++

		field := func(name string) string {
			if i, ok := col[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		if len(field("iata_code")) == 3 {
			a.WithIATA++
		}
		if strings.EqualFold(field("scheduled_service"), "yes") {
			a.WithScheduled++
		}
		a.Types[field("type")]++
		if c := field("iso_country"); c != "" {
			a.Countries[c]++
		}
	}
	return a, nil
}

// Count is a key with its number of occurrences.
type Count struct {
	Key   string
	Count int
}

// TopCounts returns the n largest entries of m, ties broken by key.
func TopCounts(m map[string]int, n int) []Count {
	counts := make([]Count, 0, len(m))
	for k, v := range m {
		counts = append(counts, Count{Key: k, Count: v})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Inspect returns the header and up to n data rows of a CSV file.
func Inspect(r io.Reader, n int) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err = reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for len(rows) < n {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

// WriteCSV exports airports in a compact CSV layout.
func WriteCSV(w io.Writer, airports []models.Airport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"IATA", "ICAO", "Name", "City", "Country", "Latitude", "Longitude", "Altitude"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, a := range airports {
		err := cw.Write([]string{
			a.IATA, a.ICAO, a.Name, a.City, a.Country,
			strconv.FormatFloat(a.Latitude, 'f', -1, 64),
			strconv.FormatFloat(a.Longitude, 'f', -1, 64),
			strconv.FormatFloat(a.AltitudeM, 'f', 1, 64),
		})
		if err != nil {
			return fmt.Errorf("failed to write airport %s: %w", a.IATA, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
