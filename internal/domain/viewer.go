package domain

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Viewer defaults.
const (
	DefaultZoom        = 13
	DefaultFocusZoom   = 18
	DefaultScrollDelay = 100 * time.Millisecond
)

// DefaultCenter is the initial map center.
var DefaultCenter = Location{Lat: 37.71677601, Lng: -122.47224851}

// ViewerOptions configures the initial viewport, the zoom used when a
// record is selected, the deferred scroll delay and the tile layers.
// Zero fields take the package defaults.
type ViewerOptions struct {
	Center      Location
	DefaultZoom int
	FocusZoom   int
	ScrollDelay time.Duration
	Tiles       TileSources
}

func (o ViewerOptions) withDefaults() ViewerOptions {
	if o.Center == (Location{}) {
		o.Center = DefaultCenter
	}
	if o.DefaultZoom <= 0 {
		o.DefaultZoom = DefaultZoom
	}
	if o.FocusZoom <= 0 {
		o.FocusZoom = DefaultFocusZoom
	}
	if o.ScrollDelay <= 0 {
		o.ScrollDelay = DefaultScrollDelay
	}
	if o.Tiles == (TileSources{}) {
		o.Tiles = NewTileSources("", "")
	}
	return o
}

// Viewer owns the viewer state. All methods are safe for concurrent use and
// are applied one at a time.
type Viewer struct {
	mu     sync.Mutex
	opts   ViewerOptions
	sink   ActivitySink
	logger *slog.Logger

	initial  []Pothole
	potholes []Pothole

	selectedID   int
	hasSelection bool
	lightbox     string
	style        MapStyle
	viewport     Viewport
	noteDraft    string
	scroll       *ScrollRequest
	scrollSeq    uint64
}

// NewViewer creates a viewer over potholes. The slice is copied. A nil sink
// disables activity events; log lines are still written.
func NewViewer(potholes []Pothole, opts ViewerOptions, sink ActivitySink, logger *slog.Logger) *Viewer {
	opts = opts.withDefaults()
	v := &Viewer{
		opts:    opts,
		sink:    sink,
		logger:  logger,
		initial: clonePotholes(potholes),
	}
	v.resetLocked()
	return v
}

// Reset restores the collection and view state loaded at startup.
func (v *Viewer) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetLocked()
	v.logger.Info("viewer state reset", "potholes", len(v.potholes))
}

func (v *Viewer) resetLocked() {
	v.potholes = clonePotholes(v.initial)
	v.hasSelection = false
	v.selectedID = 0
	v.lightbox = ""
	v.style = MapStyleStreet
	v.viewport = Viewport{Center: v.opts.Center, Zoom: v.opts.DefaultZoom}
	v.noteDraft = ""
	v.scroll = nil
}

// Len returns the number of loaded records.
func (v *Viewer) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.potholes)
}

// Potholes returns a copy of the collection in load order.
func (v *Viewer) Potholes() []Pothole {
	v.mu.Lock()
	defer v.mu.Unlock()
	return clonePotholes(v.potholes)
}

// Pothole returns the record with the given id.
func (v *Viewer) Pothole(id int) (Pothole, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexLocked(id)
	if i < 0 {
		return Pothole{}, false
	}
	return v.potholes[i], true
}

// Select makes id the selected record, re-centers the map on it at the focus
// zoom and returns the deferred scroll request for its card.
func (v *Viewer) Select(id int) (ScrollRequest, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexLocked(id)
	if i < 0 {
		return ScrollRequest{}, fmt.Errorf("select %d: %w", id, ErrPotholeNotFound)
	}
	p := v.potholes[i]
	v.selectedID = id
	v.hasSelection = true
	v.viewport = Viewport{Center: p.Location, Zoom: v.opts.FocusZoom}

	v.scrollSeq++
	req := ScrollRequest{
		TargetID: id,
		DelayMS:  v.opts.ScrollDelay.Milliseconds(),
		Seq:      v.scrollSeq,
	}
	v.scroll = &req
	return req, nil
}

// ClearSelection closes the detail panel and zooms the map back out. The
// center is left where the last selection put it.
func (v *Viewer) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hasSelection = false
	v.selectedID = 0
	v.noteDraft = ""
	v.scroll = nil
	v.viewport.Zoom = v.opts.DefaultZoom
}

// Selected returns the selected record resolved from the live collection.
func (v *Viewer) Selected() (Pothole, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedLocked()
}

// IsSelected reports whether id is the selected record.
func (v *Viewer) IsSelected(id int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hasSelection && v.selectedID == id
}

// OpenImage shows url in the lightbox.
func (v *Viewer) OpenImage(url string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lightbox = url
}

// CloseImage hides the lightbox.
func (v *Viewer) CloseImage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lightbox = ""
}

// Lightbox returns the image shown in the lightbox, if any.
func (v *Viewer) Lightbox() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lightbox, v.lightbox != ""
}

// ToggleMapStyle switches between the street and satellite layers and
// returns the new style.
func (v *Viewer) ToggleMapStyle() MapStyle {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.style = v.style.Toggle()
	return v.style
}

// MapStyle returns the active tile layer style.
func (v *Viewer) MapStyle() MapStyle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.style
}

// Viewport returns the current map viewport.
func (v *Viewer) Viewport() Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport
}

// UpdateSeverity replaces record id with a copy carrying severity. Other
// records are left untouched.
func (v *Viewer) UpdateSeverity(id, severity int) error {
	if !ValidSeverity(severity) {
		return fmt.Errorf("update severity %d to %d: %w", id, severity, ErrInvalidSeverity)
	}

	v.mu.Lock()
	i := v.indexLocked(id)
	if i < 0 {
		v.mu.Unlock()
		return fmt.Errorf("update severity %d: %w", id, ErrPotholeNotFound)
	}
	previous := v.potholes[i].Severity
	v.potholes[i] = v.potholes[i].WithSeverity(severity)
	v.mu.Unlock()

	v.logger.Info("updating pothole severity",
		"pothole_id", id,
		"severity", severity,
		"previous_severity", previous,
	)
	event := newActivityEvent(ActivitySeverityUpdated, id)
	event.Severity = severity
	event.PreviousSeverity = previous
	v.record(event)
	return nil
}

// AddNote logs a note for id. Notes are not stored.
func (v *Viewer) AddNote(id int, note string) {
	v.logger.Info("adding note to pothole", "pothole_id", id, "note", note)
	event := newActivityEvent(ActivityNoteAdded, id)
	event.Note = note
	v.record(event)
}

// MarkRepaired logs a repair mark for id. Repair status is not stored.
func (v *Viewer) MarkRepaired(id int) {
	v.logger.Info("marking pothole as repaired", "pothole_id", id)
	v.record(newActivityEvent(ActivityRepairMarked, id))
}

// SetNoteDraft replaces the detail panel's note text.
func (v *Viewer) SetNoteDraft(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.noteDraft = text
}

// NoteDraft returns the detail panel's note text.
func (v *Viewer) NoteDraft() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.noteDraft
}

// SubmitNote adds the draft as a note on the selected record and clears the
// draft. Blank drafts, or no selection, leave everything unchanged and
// return false.
func (v *Viewer) SubmitNote() bool {
	v.mu.Lock()
	if !v.hasSelection || strings.TrimSpace(v.noteDraft) == "" {
		v.mu.Unlock()
		return false
	}
	id, note := v.selectedID, v.noteDraft
	v.noteDraft = ""
	v.mu.Unlock()

	v.AddNote(id, note)
	return true
}

// Snapshot builds the render model for the current state.
func (v *Viewer) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := ViewState{
		Cards:   make([]CardView, 0, len(v.potholes)),
		Markers: make([]Marker, 0, len(v.potholes)),
		Map: MapView{
			Style:       v.style,
			Tiles:       v.opts.Tiles.For(v.style),
			ToggleLabel: v.style.ToggleLabel(),
			Viewport:    v.viewport,
		},
	}
	for _, p := range v.potholes {
		selected := v.hasSelection && p.ID == v.selectedID
		state.Cards = append(state.Cards, NewCardView(p, selected))
		state.Markers = append(state.Markers, MarkerFor(p, selected))
	}
	if p, ok := v.selectedLocked(); ok {
		id := p.ID
		state.SelectedID = &id
		state.Detail = NewDetailView(p, v.noteDraft)
	}
	if v.lightbox != "" {
		state.Lightbox = &Lightbox{Image: v.lightbox}
	}
	return state
}

// TakeScroll returns the scroll request left by the last selection and
// forgets it, so later renders do not repeat the scroll.
func (v *Viewer) TakeScroll() (ScrollRequest, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scroll == nil {
		return ScrollRequest{}, false
	}
	req := *v.scroll
	v.scroll = nil
	return req, true
}

func (v *Viewer) selectedLocked() (Pothole, bool) {
	if !v.hasSelection {
		return Pothole{}, false
	}
	i := v.indexLocked(v.selectedID)
	if i < 0 {
		return Pothole{}, false
	}
	return v.potholes[i], true
}

// indexLocked returns the position of the first record with id, or -1.
func (v *Viewer) indexLocked(id int) int {
	for i := range v.potholes {
		if v.potholes[i].ID == id {
			return i
		}
	}
	return -1
}

func (v *Viewer) record(event ActivityEvent) {
	if v.sink == nil {
		return
	}
	v.sink.Record(event)
}

func clonePotholes(in []Pothole) []Pothole {
	out := make([]Pothole, len(in))
	copy(out, in)
	return out
}
