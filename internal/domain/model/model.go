// Package model contains domain models passed between layers.
package model

import "time"

// DateLayout is the human-readable date string stored alongside the timestamp.
const DateLayout = "January 2, 2006"

// CandidateSubmission is the raw form input before validation. Repetitions is
// kept as text because it arrives from a free-form field; the validator decides
// whether it parses.
type CandidateSubmission struct {
	Name        string // submitter display name
	Email       string // submitter identity key, not authenticated
	Location    string // must match a catalog hill name
	Repetitions string // raw repetition count text
	StravaLink  string // optional proof link
}

// Submission is one validated record in the submission log. Immutable once
// written; VerticalGain is the catalog value copied at write time and is never
// recomputed, even if the catalog changes later.
type Submission struct {
	ID           string    // assigned by the store on append
	Name         string    // submitter display name
	Email        string    // grouping key for all aggregation views
	Location     string    // catalog hill name at submission time
	Repetitions  int       // always >= 1
	VerticalGain float64   // catalog vertical feet, denormalized
	StravaLink   string    // proof link or the configured sentinel
	Date         string    // human-readable form of SubmittedAt
	SubmittedAt  time.Time // stamp applied by the validator
}
