package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names the dataset must provide.
const (
	ColLatitude    = "latitude"
	ColLongitude   = "longitude"
	ColTemperature = "temperature"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// RequiredColumns lists the columns read into a Reading, in Reading field order.
func RequiredColumns() []string {
	return []string{ColLatitude, ColLongitude, ColTemperature}
}

// Loader reads ocean readings from a CSV file.
// It implements pipeline.Extractor.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a Loader for the CSV file at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Extract opens the dataset and returns its rows in file order.
func (l *Loader) Extract(ctx context.Context) ([]domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	readings, err := ReadReadings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	l.logger.Debug("dataset parsed", "path", l.path, "rows", len(readings))
	return readings, nil
}

// ReadReadings parses CSV data with a header row. Extra columns are ignored. A
// cell in a required column that is empty, non-numeric or infinite is an error.
// A header with no data rows yields an empty slice.
func ReadReadings(r io.Reader) ([]domain.Reading, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			ColLatitude:    series.Float,
			ColLongitude:   series.Float,
			ColTemperature: series.Float,
		}),
	)
	if df.Err != nil {
		// gota refuses a frame without rows, so a bare header is checked here.
		header, ok := headerOnly(data)
		if !ok {
			return nil, fmt.Errorf("read dataset: %w", df.Err)
		}
		if err := checkColumns(header); err != nil {
			return nil, err
		}
		return []domain.Reading{}, nil
	}

	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}
	cols := make([][]float64, 0, len(RequiredColumns()))
	for _, name := range RequiredColumns() {
		values := df.Col(name).Float()
		if i := firstNonFinite(values); i >= 0 {
			return nil, fmt.Errorf("column %s row %d: not a finite number", name, i+1)
		}
		cols = append(cols, values)
	}

	readings := make([]domain.Reading, df.Nrow())
	for i := range readings {
		readings[i] = domain.Reading{
			Latitude:    cols[0][i],
			Longitude:   cols[1][i],
			Temperature: cols[2][i],
		}
	}
	return readings, nil
}

func checkColumns(names []string) error {
	for _, name := range RequiredColumns() {
		if !slices.Contains(names, name) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return nil
}

// headerOnly reports whether data is a well-formed CSV holding a single record.
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

func firstNonFinite(values []float64) int {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}
