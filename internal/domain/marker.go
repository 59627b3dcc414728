package domain

import "fmt"

// Marker sizes in pixels.
const (
	MarkerSize         = 25
	SelectedMarkerSize = 35
)

// Marker is the render model for one map marker: a filled circle in the
// severity color, anchored at its center.
type Marker struct {
	ID       int      `json:"id"`
	Position Location `json:"position"`
	Severity int      `json:"severity"`
	Color    string   `json:"color"`
	Size     int      `json:"size"`
	Anchor   [2]int   `json:"anchor"`
	Selected bool     `json:"selected"`
	Popup    *Popup   `json:"popup,omitempty"`
}

// Popup is attached to the selected marker only.
type Popup struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// MarkerFor builds the marker for p.
func MarkerFor(p Pothole, selected bool) Marker {
	size := MarkerSize
	if selected {
		size = SelectedMarkerSize
	}
	m := Marker{
		ID:       p.ID,
		Position: p.Location,
		Severity: p.Severity,
		Color:    SeverityColor(p.Severity),
		Size:     size,
		Anchor:   [2]int{size / 2, size / 2},
		Selected: selected,
	}
	if selected {
		m.Popup = &Popup{
			Title: fmt.Sprintf("Pothole #%d", p.ID),
			Text:  fmt.Sprintf("Severity: %d", p.Severity),
		}
	}
	return m
}
