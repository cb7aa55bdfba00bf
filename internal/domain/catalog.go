package domain

import (
	"slices"
	"strings"
)

// AnimalFact pairs a sea animal with a short fact about it.
type AnimalFact struct {
	Animal string `json:"animal"`
	Fact   string `json:"fact"`
}

// Catalog groups facts by region. Order within a region is the configured order,
// before any shuffling.
type Catalog map[Region][]AnimalFact

// DefaultCatalog returns a fresh copy of the built-in facts so callers can modify
// the result without affecting later calls.
func DefaultCatalog() Catalog {
	return Catalog{
		Atlantic: {
			{Animal: "Blue Whale", Fact: "The blue whale is the largest animal ever known to have lived on Earth."},
			{Animal: "Atlantic Puffin", Fact: "Atlantic puffins are known for their colorful beaks and can dive up to 60m."},
		},
		Pacific: {
			{Animal: "Green Sea Turtle", Fact: "Green sea turtles are herbivores and can live up to 80 years."},
			{Animal: "Giant Pacific Octopus", Fact: "The giant Pacific octopus is the largest octopus species and can change color rapidly."},
		},
		Indian: {
			{Animal: "Dugong", Fact: "Dugongs are related to manatees and are sometimes called 'sea cows'."},
			{Animal: "Whale Shark", Fact: "The whale shark is the largest fish in the sea, found in the warm waters of the Indian Ocean."},
		},
	}
}

// Regions returns the catalog's regions with the known basins first in rule
// order, followed by any other keys sorted by name.
func (c Catalog) Regions() []Region {
	out := make([]Region, 0, len(c))
	for _, r := range Regions() {
		if _, ok := c[r]; ok {
			out = append(out, r)
		}
	}

	var extra []Region
	for r := range c {
		if !r.Valid() {
			extra = append(extra, r)
		}
	}
	slices.SortFunc(extra, func(a, b Region) int { return strings.Compare(string(a), string(b)) })

	return append(out, extra...)
}

// Contains reports whether fact is configured for region.
func (c Catalog) Contains(region Region, fact AnimalFact) bool {
	return slices.Contains(c[region], fact)
}
