package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Derived column names appended to the annotated table.
const (
	ColRegion = "region"
	ColAnimal = "animal"
	ColFact   = "fact"
	ColHover  = "hover"
)

// CSVSink writes the annotated table: the reading columns followed by the
// derived region, animal, fact and hover columns.
// It implements pipeline.Sink.
type CSVSink struct {
	path string
}

// NewCSVSink creates a sink writing to path, creating parent directories as needed.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Load(_ context.Context, batch domain.Batch) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create annotated csv: %w", err)
	}
	if err := WriteAnnotated(f, batch.Readings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteAnnotated renders readings as CSV with a header row.
func WriteAnnotated(w io.Writer, readings []domain.AnnotatedReading) error {
	df := AnnotatedFrame(readings)
	if df.Err != nil {
		return fmt.Errorf("build annotated frame: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write annotated csv: %w", err)
	}
	return nil
}

// AnnotatedFrame builds the source columns as a frame and then derives each
// annotation column with Mutate, leaving the base frame untouched. Source
// values are held as their shortest round-trip text so the CSV keeps every
// digit; gota prints Float columns with six decimals.
func AnnotatedFrame(readings []domain.AnnotatedReading) dataframe.DataFrame {
	n := len(readings)
	lat := make([]string, n)
	lon := make([]string, n)
	temp := make([]string, n)
	region := make([]string, n)
	animal := make([]string, n)
	fact := make([]string, n)
	hover := make([]string, n)

	for i, r := range readings {
		lat[i] = formatFloat(r.Latitude)
		lon[i] = formatFloat(r.Longitude)
		temp[i] = formatFloat(r.Temperature)
		region[i] = string(r.Region)
		animal[i] = r.Fact.Animal
		fact[i] = r.Fact.Fact
		hover[i] = r.Hover
	}

	base := dataframe.New(
		series.New(lat, series.String, ColLatitude),
		series.New(lon, series.String, ColLongitude),
		series.New(temp, series.String, ColTemperature),
	)

	return base.
		Mutate(series.New(region, series.String, ColRegion)).
		Mutate(series.New(animal, series.String, ColAnimal)).
		Mutate(series.New(fact, series.String, ColFact)).
		Mutate(series.New(hover, series.String, ColHover))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
