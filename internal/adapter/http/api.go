package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/pothole-viewer/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.snapshot(r))
}

func (s *Server) handleCards(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.viewer.Snapshot().Cards)
}

func (s *Server) handlePothole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, found := s.viewer.Pothole(id)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("pothole %d not found", id))
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID *int `json:"id"`
	}
	if err := decodeJSON(w, r, &body); err != nil || body.ID == nil {
		writeError(w, http.StatusBadRequest, `body must be {"id": <int>}`)
		return
	}
	scroll, err := s.viewer.Select(*body.ID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.countAction("select")
	sharedobs.WriteJSON(w, http.StatusOK, scroll)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, _ *http.Request) {
	s.viewer.ClearSelection()
	s.countAction("clear_selection")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOpenImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Image string `json:"image"`
	}
	if err := decodeJSON(w, r, &body); err != nil || body.Image == "" {
		writeError(w, http.StatusBadRequest, `body must be {"image": "<url>"}`)
		return
	}
	s.viewer.OpenImage(body.Image)
	s.countAction("open_image")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseImage(w http.ResponseWriter, _ *http.Request) {
	s.viewer.CloseImage()
	s.countAction("close_image")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleMapStyle(w http.ResponseWriter, _ *http.Request) {
	s.viewer.ToggleMapStyle()
	s.countAction("toggle_map_style")
	sharedobs.WriteJSON(w, http.StatusOK, s.viewer.Snapshot().Map)
}

func (s *Server) handleUpdateSeverity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Severity *int `json:"severity"`
	}
	if err := decodeJSON(w, r, &body); err != nil || body.Severity == nil {
		writeError(w, http.StatusBadRequest, `body must be {"severity": <1-5>}`)
		return
	}
	if err := s.viewer.UpdateSeverity(id, *body.Severity); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.countAction("update_severity")
	p, _ := s.viewer.Pothole(id)
	sharedobs.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetNoteDraft(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text *string `json:"text"`
	}
	if err := decodeJSON(w, r, &body); err != nil || body.Text == nil {
		writeError(w, http.StatusBadRequest, `body must be {"text": "<note>"}`)
		return
	}
	s.viewer.SetNoteDraft(*body.Text)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitNote(w http.ResponseWriter, _ *http.Request) {
	submitted := s.viewer.SubmitNote()
	if submitted {
		s.countAction("add_note")
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]bool{"submitted": submitted})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := decodeJSON(w, r, &body); err != nil || strings.TrimSpace(body.Note) == "" {
		writeError(w, http.StatusBadRequest, `body must be {"note": "<non-empty text>"}`)
		return
	}
	s.viewer.AddNote(id, body.Note)
	s.countAction("add_note")
	sharedobs.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleMarkRepaired(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.viewer.MarkRepaired(id)
	s.countAction("mark_repaired")
	sharedobs.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.viewer.Reset()
	s.countAction("reset")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkers(w http.ResponseWriter, _ *http.Request) {
	data, err := markerCollection(s.viewer.Snapshot().Markers).MarshalJSON()
	if err != nil {
		s.logger.Error("encode marker layer", "error", err)
		writeError(w, http.StatusInternalServerError, "encode marker layer")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// snapshot returns the view state with the detail address resolved.
func (s *Server) snapshot(r *http.Request) domain.ViewState {
	state := s.viewer.Snapshot()
	if state.Detail != nil {
		p := state.Detail.Pothole
		state.Detail.Address = domain.DescribeLocation(r.Context(), s.geocoder, p.ID, p.Location, s.logger)
	}
	return state
}

func (s *Server) countAction(action string) {
	s.metrics.ViewerActions.WithLabelValues(action).Inc()
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPotholeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidSeverity):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("viewer operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid pothole id %q", r.PathValue("id")))
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
