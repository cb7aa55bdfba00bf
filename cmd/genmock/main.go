// Command genmock writes a deterministic mock ocean readings CSV in the same
// shape as the NASA export: latitude, longitude, temperature plus a sensor id
// column the loader ignores. It prints per-region counts computed with the
// real classifier so test assertions can be updated from the output.
//
// Usage:
//
//	go run ./cmd/genmock -rows 500 -seed 1 -out data/mock/generated_readings.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/couchcryptid/ocean-globe/internal/adapter/dataset"
	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const colSensor = "sensor_id"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rows := flag.Int("rows", 200, "number of readings to generate")
	seed := flag.Uint64("seed", 1, "random seed; the same seed always yields the same file")
	out := flag.String("out", "", "output CSV path")
	flag.Parse()

	if *out == "" || *rows <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out and a positive -rows")
	}

	readings := generate(*rows, *seed)

	df := frame(readings)
	if df.Err != nil {
		return fmt.Errorf("build frame: %w", df.Err)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %d readings: %s", len(readings), *out)

	printStats(readings)
	return nil
}

// generate places readings over the open ocean latitudes with a temperature
// that falls off towards the poles.
func generate(n int, seed uint64) []domain.Reading {
	r := rand.New(rand.NewPCG(seed, seed+1)) //nolint:gosec // fixture data
	out := make([]domain.Reading, n)
	for i := range out {
		lat := r.Float64()*120 - 60
		lon := r.Float64()*360 - 180
		temp := 29 - 0.4*math.Abs(lat) + r.NormFloat64()
		out[i] = domain.Reading{
			Latitude:    round(lat, 3),
			Longitude:   round(lon, 3),
			Temperature: round(math.Max(temp, -1.8), 1),
		}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func frame(readings []domain.Reading) dataframe.DataFrame {
	n := len(readings)
	lat := make([]float64, n)
	lon := make([]float64, n)
	temp := make([]float64, n)
	sensor := make([]string, n)
	for i, r := range readings {
		lat[i] = r.Latitude
		lon[i] = r.Longitude
		temp[i] = r.Temperature
		sensor[i] = fmt.Sprintf("S%04d", i+1)
	}
	return dataframe.New(
		series.New(lat, series.Float, dataset.ColLatitude),
		series.New(lon, series.Float, dataset.ColLongitude),
		series.New(temp, series.Float, dataset.ColTemperature),
		series.New(sensor, series.String, colSensor),
	)
}

func printStats(readings []domain.Reading) {
	counts := map[domain.Region]int{}
	var minTemp, maxTemp float64
	for i, r := range readings {
		counts[domain.ClassifyRegion(r.Latitude, r.Longitude)]++
		if i == 0 || r.Temperature < minTemp {
			minTemp = r.Temperature
		}
		if i == 0 || r.Temperature > maxTemp {
			maxTemp = r.Temperature
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(readings))
	for _, region := range domain.Regions() {
		fmt.Printf("  %-9s %d\n", region, counts[region])
	}
	fmt.Printf("Temperature range: %.1f .. %.1f\n", minTemp, maxTemp)
	if len(readings) > 0 {
		first := readings[0]
		fmt.Printf("First reading: lat=%g lon=%g temp=%g region=%s\n",
			first.Latitude, first.Longitude, first.Temperature,
			domain.ClassifyRegion(first.Latitude, first.Longitude))
	}
}
