package domain

import (
	"errors"
	"strconv"

	"github.com/paulmach/orb"
)

var (
	// ErrPotholeNotFound is returned when an operation names an id that is not
	// in the loaded collection.
	ErrPotholeNotFound = errors.New("pothole not found")

	// ErrInvalidSeverity is returned when a severity edit falls outside 1–5.
	ErrInvalidSeverity = errors.New("severity must be between 1 and 5")
)

// Location is a WGS-84 latitude/longitude pair in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point returns the location as an orb point. Orb uses lon/lat order.
func (l Location) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// LatText and LngText format the coordinates with six decimals, the
// precision shown on cards and in the detail panel.
func (l Location) LatText() string { return strconv.FormatFloat(l.Lat, 'f', 6, 64) }
func (l Location) LngText() string { return strconv.FormatFloat(l.Lng, 'f', 6, 64) }

// Pothole is one report from the bundled data file.
type Pothole struct {
	ID        int      `json:"id"`
	Image     string   `json:"image"`
	Location  Location `json:"location"`
	RouteID   string   `json:"route_id"`
	SegmentID string   `json:"segment_id"`
	Severity  int      `json:"severity"`
	Timestamp float64  `json:"timestamp"` // unit unspecified upstream, carried through untouched
}

// WithSeverity returns a copy of p with the severity replaced.
func (p Pothole) WithSeverity(severity int) Pothole {
	p.Severity = severity
	return p
}
