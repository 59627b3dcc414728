// Command genmock writes a synthetic pothole dataset in the format the
// viewer loads, for local development without survey data.
//
// Usage:
//
//	go run ./cmd/genmock -count 40 -seed 7 -out data/pothole_data.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/pothole-viewer/internal/domain"
	"github.com/jonboulle/clockwork"
)

// surveyStart anchors generated timestamps so output is reproducible.
var surveyStart = time.Date(2024, time.May, 15, 8, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	count := flag.Int("count", 40, "number of records to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	out := flag.String("out", "data/pothole_data.json", "output path")
	centerLat := flag.Float64("center-lat", domain.DefaultCenter.Lat, "survey area center latitude")
	centerLng := flag.Float64("center-lng", domain.DefaultCenter.Lng, "survey area center longitude")
	radius := flag.Float64("radius-m", 1500, "survey area radius in meters")
	flag.Parse()

	if *count <= 0 {
		flag.Usage()
		return fmt.Errorf("-count must be positive")
	}
	if *radius <= 0 {
		return fmt.Errorf("-radius-m must be positive")
	}

	g := generator{
		center: domain.Location{Lat: *centerLat, Lng: *centerLng},
		radius: *radius,
		clock:  clockwork.NewFakeClockAt(surveyStart),
	}
	potholes := g.generate(*count, *seed)

	if err := writeJSON(*out, potholes); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d records to %s", len(potholes), *out)
	printSeverityBreakdown(potholes)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printSeverityBreakdown(potholes []domain.Pothole) {
	counts := map[int]int{}
	for _, p := range potholes {
		counts[p.Severity]++
	}
	for _, lvl := range domain.SeverityLevels() {
		log.Printf("  %d %-8s %d", lvl.Value, lvl.Label, counts[lvl.Value])
	}
}
