package domain

import (
	"fmt"
	"time"

	"github.com/golang/geo/s2"
)

// Reading is one sensor observation as loaded from the dataset.
type Reading struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Temperature float64 `json:"temperature"`
}

// LatLng returns the reading's position as an s2 coordinate.
func (r Reading) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(r.Latitude, r.Longitude)
}

// InRange reports whether the coordinates fall inside [-90,90] x [-180,180].
// Out-of-range readings are still classified; this only feeds warnings.
func (r Reading) InRange() bool {
	return r.LatLng().IsValid()
}

// AnnotatedReading is a Reading plus everything derived for display.
type AnnotatedReading struct {
	Index int `json:"index"`
	Reading
	Region      Region     `json:"region"`
	Fact        AnimalFact `json:"animal_fact"`
	Hover       string     `json:"hover"`
	ProcessedAt time.Time  `json:"processed_at"`
}

// Batch is the full set of annotated readings from one run, in table order.
type Batch struct {
	RunID       string
	GeneratedAt time.Time
	Readings    []AnnotatedReading
}

// Annotate classifies the reading, takes the next fact for its region from
// cycler and builds the hover text. index is the row position in the source table.
func Annotate(index int, r Reading, cycler *FactCycler) (AnnotatedReading, error) {
	region := ClassifyRegion(r.Latitude, r.Longitude)
	fact, err := cycler.Next(region)
	if err != nil {
		return AnnotatedReading{}, fmt.Errorf("annotate reading %d: %w", index, err)
	}

	return AnnotatedReading{
		Index:       index,
		Reading:     r,
		Region:      region,
		Fact:        fact,
		Hover:       BuildHoverText(region, r.Temperature, r.Latitude, r.Longitude, fact),
		ProcessedAt: clock.Now(),
	}, nil
}
