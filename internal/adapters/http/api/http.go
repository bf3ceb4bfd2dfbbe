// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hillchallenge/hillboard/internal/domain/board"
	"github.com/hillchallenge/hillboard/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitCandidate validates a raw submission and, when valid, appends
	// it to the log. The returned record carries its assigned ID.
	SubmitCandidate(ctx context.Context, c model.CandidateSubmission) (model.Submission, error)

	// Read operations expose the aggregated leaderboard views.
	Snapshot(ctx context.Context, topK int) (board.Snapshot, error)
	Coverage(ctx context.Context) ([]board.CoverageRow, error)
	TopPerLocation(ctx context.Context, k int) ([]board.TopRepsRow, error)
	TotalVertical(ctx context.Context, limit int) ([]board.VerticalRow, error)
	LocationStatus(ctx context.Context) ([]board.StatusRow, error)
	ParticipantLocations(ctx context.Context, email string) (board.ParticipantReport, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	submissionsHandler  *SubmissionsHandler
	leaderboardHandler  *LeaderboardHandler
	participantsHandler *ParticipantsHandler
}

// NewServer creates a new API server with all handlers. defaultTopK is the
// per-location ranking depth used when a request does not name its own, and
// maxVerticalLimit bounds the limit parameter on the vertical view.
func NewServer(deps Dependencies, statsProvider StatsProvider, defaultTopK, maxVerticalLimit int) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		submissionsHandler:  NewSubmissionsHandler(deps),
		leaderboardHandler:  NewLeaderboardHandler(deps, defaultTopK, maxVerticalLimit),
		participantsHandler: NewParticipantsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/submissions", MetricsMiddleware(s.submissionsHandler.HandlePostSubmission, "submissions"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetSnapshot, "leaderboard"))
	mux.HandleFunc("/leaderboard/coverage", MetricsMiddleware(s.leaderboardHandler.HandleGetCoverage, "leaderboard_coverage"))
	mux.HandleFunc("/leaderboard/top-reps", MetricsMiddleware(s.leaderboardHandler.HandleGetTopReps, "leaderboard_top_reps"))
	mux.HandleFunc("/leaderboard/vertical", MetricsMiddleware(s.leaderboardHandler.HandleGetVertical, "leaderboard_vertical"))
	mux.HandleFunc("/leaderboard/status", MetricsMiddleware(s.leaderboardHandler.HandleGetStatus, "leaderboard_status"))
	mux.HandleFunc("/participants/", MetricsMiddleware(s.participantsHandler.HandleGetLocations, "participant_locations"))
}

// submissionRequest mirrors the wire schema for POST /submissions. Every
// field arrives as text; validation and typing happen downstream.
type submissionRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	Repetitions string `json:"repetitions"`
	StravaLink  string `json:"strava_link"`
}

func (s submissionRequest) candidate() model.CandidateSubmission {
	return model.CandidateSubmission{
		Name:        s.Name,
		Email:       s.Email,
		Location:    s.Location,
		Repetitions: s.Repetitions,
		StravaLink:  s.StravaLink,
	}
}

type ackResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeFieldError(w http.ResponseWriter, status int, code, field string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Field: field, Message: msg})
}
