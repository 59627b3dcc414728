package domain

import "time"

// Viewport is the map center and zoom level.
type Viewport struct {
	Center Location `json:"center"`
	Zoom   int      `json:"zoom"`
}

// ScrollRequest asks the page to scroll the card for TargetID into view
// once DelayMS has elapsed. Requests with a Seq lower than the latest one
// the page has seen are stale and must be ignored.
type ScrollRequest struct {
	TargetID int    `json:"target_id"`
	DelayMS  int64  `json:"delay_ms"`
	Seq      uint64 `json:"seq"`
}

// Delay returns the scroll delay as a duration.
func (s ScrollRequest) Delay() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// CardView renders one entry of the list panel.
type CardView struct {
	Pothole     Pothole `json:"pothole"`
	Selected    bool    `json:"selected"`
	BorderColor string  `json:"border_color"`
	Latitude    string  `json:"latitude"`
	Longitude   string  `json:"longitude"`
}

// NewCardView derives the card for p.
func NewCardView(p Pothole, selected bool) CardView {
	return CardView{
		Pothole:     p,
		Selected:    selected,
		BorderColor: SeverityColor(p.Severity),
		Latitude:    p.Location.LatText(),
		Longitude:   p.Location.LngText(),
	}
}

// SeverityOption is one entry of the detail panel's severity selector.
type SeverityOption struct {
	Value    int    `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// DetailView renders the detail panel for the selected record.
type DetailView struct {
	Pothole         Pothole          `json:"pothole"`
	SeverityColor   string           `json:"severity_color"`
	SeverityLabel   string           `json:"severity_label"`
	SeverityOptions []SeverityOption `json:"severity_options"`
	Latitude        string           `json:"latitude"`
	Longitude       string           `json:"longitude"`
	NoteDraft       string           `json:"note_draft"`
	Address         *Address         `json:"address,omitempty"`
}

// NewDetailView derives the detail panel for p with the current note draft.
func NewDetailView(p Pothole, noteDraft string) *DetailView {
	lvl := Severity(p.Severity)
	options := make([]SeverityOption, 0, len(severityLevels))
	for _, l := range severityLevels {
		options = append(options, SeverityOption{
			Value:    l.Value,
			Label:    l.Label,
			Selected: l.Value == p.Severity,
		})
	}
	return &DetailView{
		Pothole:         p,
		SeverityColor:   lvl.Color,
		SeverityLabel:   lvl.Label,
		SeverityOptions: options,
		Latitude:        p.Location.LatText(),
		Longitude:       p.Location.LngText(),
		NoteDraft:       noteDraft,
	}
}

// Lightbox is the full-screen image overlay.
type Lightbox struct {
	Image string `json:"image"`
}

// MapView describes the map: active tile layer and viewport.
type MapView struct {
	Style       MapStyle   `json:"style"`
	Tiles       TileSource `json:"tiles"`
	ToggleLabel string     `json:"toggle_label"`
	Viewport    Viewport   `json:"viewport"`
}

// ViewState is the complete render model of the viewer at one instant.
type ViewState struct {
	SelectedID *int           `json:"selected_id"`
	Cards      []CardView     `json:"cards"`
	Markers    []Marker       `json:"markers"`
	Map        MapView        `json:"map"`
	Detail     *DetailView    `json:"detail,omitempty"`
	Lightbox   *Lightbox      `json:"lightbox,omitempty"`

	// Scroll is set only on the first page render after a selection.
	Scroll *ScrollRequest `json:"scroll,omitempty"`
}
