// Package geojson exports annotated readings as a GeoJSON FeatureCollection
// of points, one feature per reading in table order.
package geojson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	geo "github.com/paulmach/go.geojson"
)

// Feature property keys.
const (
	PropIndex       = "index"
	PropTemperature = "temperature"
	PropRegion      = "region"
	PropAnimal      = "animal"
	PropFact        = "fact"
	PropHover       = "hover"
	PropRunID       = "run_id"
)

// FeatureCollection converts the batch into point features. Coordinates are
// written in GeoJSON order, longitude first.
func FeatureCollection(batch domain.Batch) *geo.FeatureCollection {
	fc := geo.NewFeatureCollection()
	for _, r := range batch.Readings {
		f := geo.NewPointFeature([]float64{r.Longitude, r.Latitude})
		f.ID = r.Index
		f.SetProperty(PropIndex, r.Index)
		f.SetProperty(PropTemperature, r.Temperature)
		f.SetProperty(PropRegion, string(r.Region))
		f.SetProperty(PropAnimal, r.Fact.Animal)
		f.SetProperty(PropFact, r.Fact.Fact)
		f.SetProperty(PropHover, r.Hover)
		f.SetProperty(PropRunID, batch.RunID)
		fc.AddFeature(f)
	}
	return fc
}

// Sink writes the FeatureCollection to a file.
// It implements pipeline.Sink.
type Sink struct {
	path string
}

func NewSink(path string) *Sink {
	return &Sink{path: path}
}

func (s *Sink) Name() string { return "geojson" }

func (s *Sink) Load(_ context.Context, batch domain.Batch) error {
	raw, err := FeatureCollection(batch).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode feature collection: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}

// ReadFile parses a FeatureCollection previously written by Sink.
func ReadFile(path string) (*geo.FeatureCollection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	fc, err := geo.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}
