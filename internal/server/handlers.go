package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rewired-gh/surveyboard/internal/logger"
	"github.com/rewired-gh/surveyboard/internal/models"
	"github.com/rewired-gh/surveyboard/internal/render"
)

// selection reads the two dropdown values from the query string. A missing source
// means all sources; a present but empty one selects blank source cells.
func (s *Server) selection(r *http.Request) models.Selection {
	q := r.URL.Query()
	source := models.AllSources
	if q.Has("source") {
		source = q.Get("source")
	}
	return s.service.Resolve(q.Get("topic"), source)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.service.Dataset().Len(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Options())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Update(s.selection(r)))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")

	spec, err := s.service.Chart(s.selection(r), name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	format, err := s.renderer.Resolve(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	contentType, _ := render.ContentType(format)

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, spec, format); err != nil {
		logger.Error("Failed to render chart %s (request %s): %v", name, RequestIDFrom(r.Context()), err)
		writeError(w, http.StatusInternalServerError, errors.New("chart rendering failed"))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Debug("Failed to write chart %s: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
