package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/pothole-viewer/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb/geo"
)

// severityWeights skews generated data towards minor damage, as road
// surveys do. Index i is severity i+1.
var severityWeights = [...]int{35, 25, 20, 13, 7}

const (
	routeCount       = 6
	segmentsPerRoute = 40
	// A survey vehicle logs a detection every 20–90 seconds.
	minDetectionGap = 20 * time.Second
	maxDetectionGap = 90 * time.Second
)

type generator struct {
	center domain.Location
	radius float64 // meters
	clock  *clockwork.FakeClock
}

// generate returns count records with ids 1..count. The same seed yields
// the same records.
func (g generator) generate(count int, seed uint64) []domain.Pothole {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	center := g.center.Point()

	potholes := make([]domain.Pothole, 0, count)
	for i := 1; i <= count; i++ {
		// sqrt keeps the density uniform over the disc.
		dist := g.radius * math.Sqrt(rng.Float64())
		pt := geo.PointAtBearingAndDistance(center, rng.Float64()*360, dist)

		route := rng.IntN(routeCount) + 1
		gap := minDetectionGap + time.Duration(rng.Int64N(int64(maxDetectionGap-minDetectionGap)))
		g.clock.Advance(gap)

		potholes = append(potholes, domain.Pothole{
			ID:        i,
			Image:     fmt.Sprintf("survey/route-%02d/img_%05d.jpg", route, i),
			Location:  domain.Location{Lat: round6(pt.Lat()), Lng: round6(pt.Lon())},
			RouteID:   fmt.Sprintf("R-%02d", route),
			SegmentID: fmt.Sprintf("S-%02d-%03d", route, rng.IntN(segmentsPerRoute)+1),
			Severity:  pickSeverity(rng),
			Timestamp: float64(g.clock.Now().Unix()),
		})
	}
	return potholes
}

func pickSeverity(rng *rand.Rand) int {
	total := 0
	for _, w := range severityWeights {
		total += w
	}
	n := rng.IntN(total)
	for i, w := range severityWeights {
		if n < w {
			return i + 1
		}
		n -= w
	}
	return domain.MaxSeverity
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
