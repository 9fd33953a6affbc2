package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/types"
)

//go:embed cities.csv
var defaultCities []byte

// City is a candidate location from the reference dataset
type City struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     string  `json:"country,omitempty"`
	Population  int64   `json:"population,omitempty"`
	CapitalType string  `json:"capitalType,omitempty"`
}

// NewLocation converts the city into a location ready to be stored
func (c City) NewLocation() types.NewLocation {
	loc := types.NewLocation{
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
	if c.Country != "" {
		country := c.Country
		loc.Country = &country
	}
	if c.Population > 0 {
		population := c.Population
		loc.Population = &population
	}
	if c.CapitalType != "" {
		capitalType := c.CapitalType
		loc.CapitalType = &capitalType
	}
	return loc
}

// Catalog is the immutable list of candidate cities loaded at startup
type Catalog struct {
	cities []City
}

func New(cities []City) *Catalog {
	return &Catalog{cities: append([]City(nil), cities...)}
}

// Cities returns a copy of every city in file order
func (c *Catalog) Cities() []City {
	return append([]City(nil), c.cities...)
}

func (c *Catalog) Len() int {
	return len(c.cities)
}

// Search returns cities whose name or country contains query, case-insensitively.
// An empty query matches everything; limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []City {
	fold := cases.Fold()
	query = fold.String(strings.TrimSpace(query))

	matches := make([]City, 0)
	for _, city := range c.cities {
		if limit > 0 && len(matches) >= limit {
			break
		}
		if query == "" ||
			strings.Contains(fold.String(city.Name), query) ||
			strings.Contains(fold.String(city.Country), query) {
			matches = append(matches, city)
		}
	}
	return matches
}

// Load reads the catalog from the configured file, else from S3, else the
// built-in city list.
func Load(ctx context.Context, cfg config.CatalogConfig, logger *slog.Logger) (*Catalog, error) {
	logger = logger.With("component", "catalog")

	switch {
	case cfg.Path != "":
		cat, err := LoadFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded city catalog from file", "path", cfg.Path, "cities", cat.Len())
		return cat, nil

	case cfg.S3.Bucket != "":
		cat, err := LoadS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded city catalog from object storage",
			"bucket", cfg.S3.Bucket,
			"object", cfg.S3.Object,
			"cities", cat.Len(),
		)
		return cat, nil

	default:
		cat, err := Parse(bytes.NewReader(defaultCities))
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in catalog: %w", err)
		}
		logger.Info("loaded built-in city catalog", "cities", cat.Len())
		return cat, nil
	}
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	cat, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return cat, nil
}

// Column names accepted in the header row
var headerAliases = map[string]string{
	"name":         "name",
	"city":         "name",
	"latitude":     "latitude",
	"lat":          "latitude",
	"longitude":    "longitude",
	"lng":          "longitude",
	"lon":          "longitude",
	"country":      "country",
	"population":   "population",
	"capital_type": "capital_type",
	"capitaltype":  "capital_type",
	"capital":      "capital_type",
}

// Parse reads a CSV with a header row. name, latitude and longitude are required.
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("catalog is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := headerAliases[key]; ok {
			columns[canonical] = i
		}
	}
	for _, required := range []string{"name", "latitude", "longitude"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing %s column", required)
		}
	}

	field := func(record []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	cities := make([]City, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		city := City{
			Name:        field(record, "name"),
			Country:     field(record, "country"),
			CapitalType: field(record, "capital_type"),
		}
		if city.Name == "" {
			return nil, fmt.Errorf("line %d: empty name", line)
		}
		if city.Latitude, err = parseFinite(field(record, "latitude")); err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %w", line, err)
		}
		if city.Longitude, err = parseFinite(field(record, "longitude")); err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %w", line, err)
		}
		if population := field(record, "population"); population != "" {
			if city.Population, err = parsePopulation(population); err != nil {
				return nil, fmt.Errorf("line %d: invalid population: %w", line, err)
			}
		}

		cities = append(cities, city)
	}

	return &Catalog{cities: cities}, nil
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// parsePopulation accepts integers and the float form some datasets use ("8908081.0")
func parsePopulation(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%d is negative", n)
		}
		return n, nil
	}

	f, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit
	if f < 0 || f >= float64(math.MaxInt64) {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int64(f), nil
}
