package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadReadings(t *testing.T) {
	data := "temperature,longitude,latitude,station\n" +
		"18.4,-30.5,41.25,A\n" +
		"29.3,150,-5,B\n"

	readings, err := ReadReadings(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []domain.Reading{
		{Latitude: 41.25, Longitude: -30.5, Temperature: 18.4},
		{Latitude: -5, Longitude: 150, Temperature: 29.3},
	}, readings)
}

func TestReadReadings_MissingColumn(t *testing.T) {
	data := "latitude,longitude\n1,2\n"

	_, err := ReadReadings(strings.NewReader(data))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColTemperature)
}

func TestReadReadings_HeaderOnly(t *testing.T) {
	readings, err := ReadReadings(strings.NewReader("latitude,longitude,temperature,station\n"))
	require.NoError(t, err)
	assert.NotNil(t, readings)
	assert.Empty(t, readings)

	_, err = ReadReadings(strings.NewReader("latitude,temperature\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColLongitude)

	_, err = ReadReadings(strings.NewReader(""))
	require.Error(t, err)
}

func TestReadReadings_NonNumeric(t *testing.T) {
	tests := []struct {
		name string
		data string
		col  string
	}{
		{"text temperature", "latitude,longitude,temperature\n1,2,warm\n", ColTemperature},
		{"empty latitude", "latitude,longitude,temperature\n1,2,3\n,2,3\n", ColLatitude},
		{"infinite longitude", "latitude,longitude,temperature\n1,Inf,3\n", ColLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadReadings(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "column "+tt.col)
		})
	}
}

func TestLoader_ExtractFixture(t *testing.T) {
	loader := NewLoader(filepath.Join("..", "..", "..", "data", "mock", "ocean_readings.csv"), discardLogger())

	readings, err := loader.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 12)
	assert.Equal(t, domain.Reading{Latitude: 41.25, Longitude: -30.5, Temperature: 18.4}, readings[0])
	assert.Equal(t, domain.Reading{Latitude: 8.7, Longitude: -75, Temperature: 27}, readings[11])
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.csv"), discardLogger())

	_, err := loader.Extract(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "open dataset")
}

func TestLoader_CancelledContext(t *testing.T) {
	loader := NewLoader("unused.csv", discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Extract(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func annotatedFixture() []domain.AnnotatedReading {
	fact := domain.AnimalFact{Animal: "Dugong", Fact: "Dugongs are related to manatees and are sometimes called 'sea cows'."}
	return []domain.AnnotatedReading{
		{
			Index:   0,
			Reading: domain.Reading{Latitude: 0, Longitude: 60, Temperature: 28.9},
			Region:  domain.Indian,
			Fact:    fact,
			Hover:   domain.BuildHoverText(domain.Indian, 28.9, 0, 60, fact),
		},
	}
}

func TestWriteAnnotated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnnotated(&buf, annotatedFixture()))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{ColLatitude, ColLongitude, ColTemperature, ColRegion, ColAnimal, ColFact, ColHover}, records[0])
	assert.Equal(t, "Indian", records[1][3])
	assert.Equal(t, "Dugong", records[1][4])
	assert.Equal(t, annotatedFixture()[0].Hover, records[1][6])

	// The annotated table is still a valid dataset.
	readings, err := ReadReadings(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []domain.Reading{annotatedFixture()[0].Reading}, readings)
}

func TestWriteAnnotated_KeepsFullPrecision(t *testing.T) {
	readings := annotatedFixture()
	readings[0].Reading = domain.Reading{Latitude: 12.3456789, Longitude: -1.23e-7, Temperature: 1e-9}

	var buf bytes.Buffer
	require.NoError(t, WriteAnnotated(&buf, readings))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"12.3456789", "-0.000000123", "0.000000001"}, records[1][:3])

	back, err := ReadReadings(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []domain.Reading{readings[0].Reading}, back)
}

func TestAnnotatedFrame_BaseColumnsFirst(t *testing.T) {
	df := AnnotatedFrame(annotatedFixture())
	require.NoError(t, df.Err)
	assert.Equal(t, 1, df.Nrow())
	assert.Equal(t, 7, df.Ncol())
	assert.Equal(t, []string{"Indian"}, df.Col(ColRegion).Records())
}

func TestCSVSink_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "annotated.csv")
	sink := NewCSVSink(path)
	assert.Equal(t, "csv", sink.Name())

	err := sink.Load(context.Background(), domain.Batch{RunID: "run-1", Readings: annotatedFixture()})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "latitude,longitude,temperature,region,animal,fact,hover\n"))
}
