// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/hillchallenge/hillboard/internal/domain/board"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Snapshot(ctx context.Context, topK int) (board.Snapshot, error)
	Coverage(ctx context.Context) ([]board.CoverageRow, error)
	TopPerLocation(ctx context.Context, k int) ([]board.TopRepsRow, error)
	TotalVertical(ctx context.Context, limit int) ([]board.VerticalRow, error)
	LocationStatus(ctx context.Context) ([]board.StatusRow, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps        LeaderboardDependencies
	defaultTopK int
	maxLimit    int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, defaultTopK, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:        deps,
		defaultTopK: defaultTopK,
		maxLimit:    maxLimit,
	}
}

// HandleGetSnapshot handles GET /leaderboard requests. It returns all four
// aggregated views built from the same read of the log.
func (h *LeaderboardHandler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_snapshot"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context(), h.defaultTopK)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleGetCoverage handles GET /leaderboard/coverage requests.
func (h *LeaderboardHandler) HandleGetCoverage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_coverage"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows, err := h.deps.Coverage(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleGetTopReps handles GET /leaderboard/top-reps?k=N requests. Absent k
// falls back to the configured ranking depth; k=1 yields a single winner
// per location.
func (h *LeaderboardHandler) HandleGetTopReps(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_top_reps"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	k := h.defaultTopK
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		k = n
	}
	rows, err := h.deps.TopPerLocation(r.Context(), k)
	if err != nil {
		if errors.Is(err, board.ErrInvalidTopK) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleGetVertical handles GET /leaderboard/vertical?limit=K requests.
// Absent limit returns the full standings.
func (h *LeaderboardHandler) HandleGetVertical(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_vertical"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	rows, err := h.deps.TotalVertical(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleGetStatus handles GET /leaderboard/status requests.
func (h *LeaderboardHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_status"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows, err := h.deps.LocationStatus(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
