package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityKind names a log-only mutation.
type ActivityKind string

const (
	ActivitySeverityUpdated ActivityKind = "severity_updated"
	ActivityNoteAdded       ActivityKind = "note_added"
	ActivityRepairMarked    ActivityKind = "repair_marked"
)

// ActivityEvent records one viewer mutation for downstream consumers. Events
// are fire-and-forget: nothing in the viewer reads them back.
type ActivityEvent struct {
	ID               string       `json:"id"`
	Kind             ActivityKind `json:"kind"`
	PotholeID        int          `json:"pothole_id"`
	Note             string       `json:"note,omitempty"`
	Severity         int          `json:"severity,omitempty"`
	PreviousSeverity int          `json:"previous_severity,omitempty"`
	RecordedAt       time.Time    `json:"recorded_at"`
}

// ActivitySink receives activity events. Record must not block.
type ActivitySink interface {
	Record(event ActivityEvent)
}

func newActivityEvent(kind ActivityKind, potholeID int) ActivityEvent {
	return ActivityEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		PotholeID:  potholeID,
		RecordedAt: clock.Now().UTC(),
	}
}
