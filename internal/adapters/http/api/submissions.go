// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hillchallenge/hillboard/internal/domain/model"
	"github.com/hillchallenge/hillboard/internal/domain/validate"
	"github.com/hillchallenge/hillboard/pkg/metrics"
)

// SubmissionDependencies defines the interface for submission intake.
type SubmissionDependencies interface {
	SubmitCandidate(ctx context.Context, c model.CandidateSubmission) (model.Submission, error)
}

// SubmissionsHandler handles submission intake requests.
type SubmissionsHandler struct {
	deps SubmissionDependencies
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps SubmissionDependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// HandlePostSubmission handles POST /submissions requests.
func (h *SubmissionsHandler) HandlePostSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_submission"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordSubmissionRejected("malformed_body")
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	stored, err := h.deps.SubmitCandidate(r.Context(), req.candidate())
	if err != nil {
		if verr, ok := validate.AsError(err); ok {
			metrics.RecordSubmissionRejected(string(verr.Kind))
			writeFieldError(w, http.StatusBadRequest, string(verr.Kind), verr.Field, verr)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	metrics.RecordSubmissionAccepted()
	writeJSON(w, http.StatusCreated, ackResponse{Status: "accepted", ID: stored.ID})
}
