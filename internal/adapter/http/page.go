package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/couchcryptid/pothole-viewer/internal/domain"
)

//go:embed templates/viewer.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.New("viewer.html.tmpl").Funcs(template.FuncMap{
	"toJSON": toJSON,
}).ParseFS(templateFS, "templates/viewer.html.tmpl"))

type pageData struct {
	State domain.ViewState
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	state := s.snapshot(r)
	if req, ok := s.viewer.TakeScroll(); ok {
		state.Scroll = &req
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, pageData{State: state}); err != nil {
		s.logger.Error("render viewer page", "error", err)
		writeError(w, http.StatusInternalServerError, "render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
