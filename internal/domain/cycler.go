package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrUnknownRegion is returned when a fact is requested for a region the
	// cycler was not configured with.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrEmptyFactList is returned when a catalog region has no facts.
	ErrEmptyFactList = errors.New("empty fact list")
)

// Shuffler permutes n elements in place through swap. It has the same shape as
// (*rand.Rand).Shuffle.
type Shuffler func(n int, swap func(i, j int))

// SeededShuffle returns a Shuffler driven by a PCG source seeded with seed. The
// same seed always yields the same permutations.
func SeededShuffle(seed int64) Shuffler {
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)) //nolint:gosec // presentation order, not security
	return r.Shuffle
}

// IdentityShuffle keeps the configured order. Use it when the catalog is
// already in the order the facts should be shown.
func IdentityShuffle(int, func(i, j int)) {}

// FactCycler hands out facts round-robin per region. Each region's list is
// shuffled once at construction and never again.
//
// A FactCycler is not safe for concurrent use.
type FactCycler struct {
	order   map[Region][]AnimalFact
	cursors map[Region]int
}

// NewFactCycler copies the catalog, shuffles each region's copy with shuffle
// (regions are visited in [Catalog.Regions] order so seeded runs reproduce), and
// starts every cursor at zero. A nil shuffle behaves like [IdentityShuffle].
func NewFactCycler(catalog Catalog, shuffle Shuffler) (*FactCycler, error) {
	if len(catalog) == 0 {
		return nil, errors.New("fact catalog has no regions")
	}
	if shuffle == nil {
		shuffle = IdentityShuffle
	}

	c := &FactCycler{
		order:   make(map[Region][]AnimalFact, len(catalog)),
		cursors: make(map[Region]int, len(catalog)),
	}
	for _, region := range catalog.Regions() {
		facts := catalog[region]
		if len(facts) == 0 {
			return nil, fmt.Errorf("region %s: %w", region, ErrEmptyFactList)
		}
		list := make([]AnimalFact, len(facts))
		copy(list, facts)
		shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })

		c.order[region] = list
		c.cursors[region] = 0
	}
	return c, nil
}

// NewSeededFactCycler is NewFactCycler with [SeededShuffle].
func NewSeededFactCycler(catalog Catalog, seed int64) (*FactCycler, error) {
	return NewFactCycler(catalog, SeededShuffle(seed))
}

// Next returns the fact at the region's cursor (modulo the list length) and
// advances the cursor by one.
func (c *FactCycler) Next(region Region) (AnimalFact, error) {
	list, ok := c.order[region]
	if !ok {
		return AnimalFact{}, fmt.Errorf("next fact for %q: %w", region, ErrUnknownRegion)
	}
	idx := c.cursors[region] % len(list)
	c.cursors[region]++
	return list[idx], nil
}

// Order returns a copy of the region's shuffled list, or nil for an unknown region.
func (c *FactCycler) Order(region Region) []AnimalFact {
	list, ok := c.order[region]
	if !ok {
		return nil
	}
	out := make([]AnimalFact, len(list))
	copy(out, list)
	return out
}

// Cursor returns how many facts have been served for region.
func (c *FactCycler) Cursor(region Region) int {
	return c.cursors[region]
}
