// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hillchallenge/hillboard/internal/domain/board"
)

// ParticipantDependencies defines the interface for per-participant reports.
type ParticipantDependencies interface {
	ParticipantLocations(ctx context.Context, email string) (board.ParticipantReport, error)
}

// ParticipantsHandler handles per-participant report requests.
type ParticipantsHandler struct {
	deps ParticipantDependencies
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantDependencies) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps}
}

// HandleGetLocations handles GET /participants/{email}/locations requests.
// The email path segment matches submissions exactly, byte for byte.
func (h *ParticipantsHandler) HandleGetLocations(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_participant_locations"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract the path parameter between /participants/ and /locations.
	path := strings.TrimPrefix(r.URL.Path, "/participants/")
	email, ok := strings.CutSuffix(path, "/locations")
	if !ok || email == "" || strings.Contains(email, "/") {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	if decoded, err := url.PathUnescape(email); err == nil {
		email = decoded
	}
	report, err := h.deps.ParticipantLocations(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
