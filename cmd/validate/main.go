// Command validate checks a readings.geojson produced by the globe run against
// the rules that produced it: region classification, the fact catalog, the
// per-region round-robin order and the hover text. It prints a pass/fail line
// per phase and exits 1 if any phase fails.
//
// Usage:
//
//	go run ./cmd/validate -geojson out/readings.geojson
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/couchcryptid/ocean-globe/internal/adapter/geojson"
	"github.com/couchcryptid/ocean-globe/internal/domain"
	geo "github.com/paulmach/go.geojson"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// row is a feature decoded back into the values the pipeline emitted.
type row struct {
	index int
	runID string
	lat   float64
	lon   float64
	temp  float64
	hover string
	// region as written, not as reclassified.
	region domain.Region
	fact   domain.AnimalFact
}

func main() {
	path := flag.String("geojson", "", "path to readings.geojson written by a globe run")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*path))
}

func run(path string) int {
	fmt.Println("=== Ocean Globe Output Validation ===")
	fmt.Println()

	fc, err := geojson.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	decode := &phase{name: "Feature decoding"}
	rows := decodeRows(fc, decode)
	catalog := domain.DefaultCatalog()

	phases := []*phase{
		decode,
		validateRunIntegrity(rows),
		validateClassification(rows),
		validateCatalog(rows, catalog),
		validateRoundRobin(rows, catalog),
		validateHover(rows),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Features: %d\n", len(fc.Features))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func decodeRows(fc *geo.FeatureCollection, p *phase) []row {
	rows := make([]row, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
			p.errorf("feature %d: geometry is not a point", i)
			continue
		}
		idx, err := f.PropertyFloat64(geojson.PropIndex)
		if err != nil {
			p.errorf("feature %d: %v", i, err)
			continue
		}
		r := row{
			index: int(idx),
			lon:   f.Geometry.Point[0],
			lat:   f.Geometry.Point[1],
		}
		var errs []error
		r.temp, err = f.PropertyFloat64(geojson.PropTemperature)
		errs = append(errs, err)
		region, err := f.PropertyString(geojson.PropRegion)
		errs = append(errs, err)
		r.region = domain.Region(region)
		r.fact.Animal, err = f.PropertyString(geojson.PropAnimal)
		errs = append(errs, err)
		r.fact.Fact, err = f.PropertyString(geojson.PropFact)
		errs = append(errs, err)
		r.hover, err = f.PropertyString(geojson.PropHover)
		errs = append(errs, err)
		r.runID, err = f.PropertyString(geojson.PropRunID)
		errs = append(errs, err)

		bad := false
		for _, e := range errs {
			if e != nil {
				p.errorf("feature %d: %v", i, e)
				bad = true
			}
		}
		if !bad {
			rows = append(rows, r)
		}
	}
	slices.SortFunc(rows, func(a, b row) int { return a.index - b.index })
	return rows
}

// validateRunIntegrity checks every row came from one run with contiguous indices.
func validateRunIntegrity(rows []row) *phase {
	p := &phase{name: "Run integrity (run id, contiguous indices)"}
	for i, r := range rows {
		if r.index != i {
			p.errorf("expected index %d, got %d", i, r.index)
		}
		if r.runID != rows[0].runID {
			p.errorf("row %d: run id %q differs from %q", r.index, r.runID, rows[0].runID)
		}
	}
	return p
}

func validateClassification(rows []row) *phase {
	p := &phase{name: "Region classification"}
	for _, r := range rows {
		if want := domain.ClassifyRegion(r.lat, r.lon); r.region != want {
			p.errorf("row %d (%g, %g): region %s, want %s", r.index, r.lat, r.lon, r.region, want)
		}
	}
	return p
}

func validateCatalog(rows []row, catalog domain.Catalog) *phase {
	p := &phase{name: "Facts drawn from region catalog"}
	for _, r := range rows {
		if !catalog.Contains(r.region, r.fact) {
			p.errorf("row %d: %q is not a %s fact", r.index, r.fact.Animal, r.region)
		}
	}
	return p
}

// validateRoundRobin checks each region's fact sequence visits every fact of
// its shuffled list once before repeating, then repeats with the same period.
func validateRoundRobin(rows []row, catalog domain.Catalog) *phase {
	p := &phase{name: "Round-robin fact order per region"}

	seq := map[domain.Region][]domain.AnimalFact{}
	for _, r := range rows {
		seq[r.region] = append(seq[r.region], r.fact)
	}

	for region, facts := range seq {
		n := len(catalog[region])
		if n == 0 {
			continue
		}
		first := facts[:min(n, len(facts))]
		for i := range first {
			if slices.Contains(first[:i], first[i]) {
				p.errorf("%s: %q repeats within the first cycle", region, first[i].Animal)
			}
		}
		for i := n; i < len(facts); i++ {
			if facts[i] != facts[i-n] {
				p.errorf("%s: occurrence %d is %q, want %q", region, i, facts[i].Animal, facts[i-n].Animal)
			}
		}
	}
	return p
}

func validateHover(rows []row) *phase {
	p := &phase{name: "Hover text reconstruction"}
	for _, r := range rows {
		want := domain.BuildHoverText(r.region, r.temp, r.lat, r.lon, r.fact)
		if r.hover != want {
			p.errorf("row %d: hover mismatch\n    got:  %q\n    want: %q", r.index, r.hover, want)
		}
	}
	return p
}
