// Package validate checks candidate submissions against the hill catalog and
// basic sanity rules before they are allowed into the submission log.
package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/hillchallenge/hillboard/internal/domain/catalog"
	"github.com/hillchallenge/hillboard/internal/domain/model"
)

// DefaultStravaLink is recorded when a submission omits a proof link.
const DefaultStravaLink = "no link provided"

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithDefaultStravaLink overrides the sentinel recorded for absent proof links.
func WithDefaultStravaLink(link string) Option {
	return func(v *Validator) {
		if link != "" {
			v.defaultStravaLink = link
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// Validator is a pure checker plus enricher: it has no side effects, and
// writing the result to the log is the caller's explicit next step.
type Validator struct {
	catalog           *catalog.Catalog
	defaultStravaLink string
	now               func() time.Time
}

// New constructs a Validator bound to the loaded hill catalog.
func New(cat *catalog.Catalog, opts ...Option) *Validator {
	v := &Validator{
		catalog:           cat,
		defaultStravaLink: DefaultStravaLink,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks the candidate in order, short-circuiting on the first
// failure, and on success returns the normalized Submission: VerticalGain
// resolved from the catalog, the strava link defaulted, and the timestamp
// stamped. The record ID is left empty; the store assigns it on append.
func (v *Validator) Validate(c model.CandidateSubmission) (model.Submission, error) {
	if strings.TrimSpace(c.Name) == "" {
		return model.Submission{}, MissingField(FieldName)
	}
	if strings.TrimSpace(c.Email) == "" {
		return model.Submission{}, MissingField(FieldEmail)
	}
	if strings.TrimSpace(c.Location) == "" {
		return model.Submission{}, MissingField(FieldLocation)
	}
	hill, ok := v.catalog.Lookup(c.Location)
	if !ok {
		return model.Submission{}, UnknownLocation(c.Location)
	}
	reps, err := parseRepetitions(c.Repetitions)
	if err != nil {
		return model.Submission{}, InvalidField(FieldRepetitions)
	}

	link := c.StravaLink
	if strings.TrimSpace(link) == "" {
		link = v.defaultStravaLink
	}
	now := v.now()

	return model.Submission{
		Name:         c.Name,
		Email:        c.Email,
		Location:     hill.Name,
		Repetitions:  reps,
		VerticalGain: hill.VerticalFeet,
		StravaLink:   link,
		Date:         now.Format(model.DateLayout),
		SubmittedAt:  now,
	}, nil
}

// parseRepetitions accepts base-10 integer text only. Floats like "2.0" are
// rejected rather than truncated.
func parseRepetitions(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
