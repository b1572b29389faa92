package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/cover-letter-dashboard/internal/dashboard"
	"github.com/jonathan/cover-letter-dashboard/internal/types"
)

// maxRequestBodySize bounds JSON bodies. Limits count runes, and a rune can
// take up to 12 bytes as an escaped surrogate pair.
const maxRequestBodySize = (types.MaxCompanyNameLength+types.MaxJobTitleLength+types.MaxJobDescriptionLength)*12 + 4<<10

// handleListStats returns the dashboard stats
func (s *Server) handleListStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"stats": s.data.Stats,
		"count": len(s.data.Stats),
	})
}

// handleListCoverLetters returns the cover letter history
func (s *Server) handleListCoverLetters(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cover_letters": s.data.History,
		"count":         len(s.data.History),
	})
}

// handleGetCoverLetter returns one history entry by key
func (s *Server) handleGetCoverLetter(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	row, ok := s.data.Find(key)
	if !ok {
		err := &ErrCoverLetterNotFound{Key: key}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, coverLetterResponse{
		HistoryRow:                row,
		EstimatedTimeSavedMinutes: dashboard.EstimatedMinutesPerLetter,
	})
}

// coverLetterResponse is a history entry with the time it is credited with saving.
type coverLetterResponse struct {
	dashboard.HistoryRow
	EstimatedTimeSavedMinutes int `json:"estimated_time_saved_minutes"`
}

// handleCreateCoverLetter accepts a generation request as JSON
func (s *Server) handleCreateCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req types.CoverLetterRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.requestCoverLetter(r, &req)

	var verr *ErrValidation
	if errors.As(err, &verr) {
		s.jsonResponse(w, HTTPStatus(err), map[string]any{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
		return
	}

	s.errorResponse(w, HTTPStatus(err), err.Error())
}
