// Package board is the aggregation engine: read-only queries over the
// submission log that produce the derived leaderboard views. Every query is a
// full scan of the current log contents; nothing is cached across calls.
//
// Grouping by email is exact-match and case-sensitive, so "A@x.com" and
// "a@x.com" count as two different people. That mirrors how the challenge has
// always been scored; changing it would silently merge historical entries.
package board

import (
	"context"
	"sort"
	"time"

	"github.com/hillchallenge/hillboard/internal/domain/catalog"
	"github.com/hillchallenge/hillboard/internal/domain/model"
	"github.com/hillchallenge/hillboard/pkg/metrics"
)

// Log is the read side of the submission log. All returns the current
// persisted state on every call.
type Log interface {
	All(ctx context.Context) ([]model.Submission, error)
}

// CoverageRow is one person's distinct-location count.
type CoverageRow struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	LocationsCovered int    `json:"locations_covered"`
}

// TopRepsRow is one ranked person within a location. Label is the display
// form of Location: blank on every row after the first for that location.
// Location itself is always set.
type TopRepsRow struct {
	Location string `json:"location"`
	Label    string `json:"label"`
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Reps     int    `json:"reps"`
}

// VerticalRow is one person's total vertical feet.
type VerticalRow struct {
	Email             string  `json:"email"`
	Name              string  `json:"name"`
	TotalVerticalFeet float64 `json:"total_vertical_feet"`
}

// StatusRow is one row of the two-row location-coverage summary.
type StatusRow struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Status labels for the location-coverage summary.
const (
	StatusHilled    = "Hilled"
	StatusNotHilled = "Not Hilled"
)

// LocationReps is one location's total repetitions for a single participant.
type LocationReps struct {
	Location  string `json:"location"`
	TotalReps int    `json:"total_reps"`
}

// ParticipantReport is the per-email breakdown: reps per location plus
// completion progress against the full catalog.
type ParticipantReport struct {
	Email              string         `json:"email"`
	Locations          []LocationReps `json:"locations"`
	LocationsCompleted int            `json:"locations_completed"`
	PercentComplete    float64        `json:"percent_complete"`
}

// Snapshot bundles all four leaderboard views, rebuilt on demand. It has no
// persisted identity; it is purely a function of the log at build time.
type Snapshot struct {
	Coverage       []CoverageRow `json:"coverage"`
	TopPerLocation []TopRepsRow  `json:"top_per_location"`
	TotalVertical  []VerticalRow `json:"total_vertical"`
	LocationStatus []StatusRow   `json:"location_status"`
	BuiltAt        time.Time     `json:"built_at"`
}

// Engine runs the leaderboard queries. It holds no mutable state: each call
// re-reads the log, so concurrent appends are visible on the next query.
type Engine struct {
	log     Log
	catalog *catalog.Catalog
}

// New constructs an Engine over the given log and catalog.
func New(log Log, cat *catalog.Catalog) *Engine {
	return &Engine{log: log, catalog: cat}
}

// Coverage groups the log by email and counts distinct locations per person.
// Rows are sorted by LocationsCovered descending; ties break by name
// ascending, then email ascending.
func (e *Engine) Coverage(ctx context.Context) ([]CoverageRow, error) {
	subs, err := e.log.All(ctx)
	if err != nil {
		return nil, err
	}

	type group struct {
		name      string
		locations map[string]struct{}
	}
	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, s := range subs {
		g, ok := groups[s.Email]
		if !ok {
			g = &group{name: s.Name, locations: make(map[string]struct{})}
			groups[s.Email] = g
			order = append(order, s.Email)
		}
		g.locations[s.Location] = struct{}{}
	}

	rows := make([]CoverageRow, 0, len(order))
	for _, email := range order {
		g := groups[email]
		rows = append(rows, CoverageRow{
			Name:             g.name,
			Email:            email,
			LocationsCovered: len(g.locations),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].LocationsCovered != rows[j].LocationsCovered {
			return rows[i].LocationsCovered > rows[j].LocationsCovered
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Email < rows[j].Email
	})
	return rows, nil
}

// TopPerLocation sums repetitions per (location, email), then ranks people
// within each location by total reps descending and keeps the top k. k=1 is
// the single-winner form. Ties keep original grouping order (first appearance
// in the log), so identical input always yields identical output. Locations
// are ordered ascending; Label is blanked on rows after the first per location.
func (e *Engine) TopPerLocation(ctx context.Context, k int) ([]TopRepsRow, error) {
	if k < 1 {
		return nil, ErrInvalidTopK
	}
	subs, err := e.log.All(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ location, email string }
	type group struct {
		name string
		reps int
	}
	groups := make(map[key]*group)
	orderByLocation := make(map[string][]key)
	for _, s := range subs {
		kk := key{location: s.Location, email: s.Email}
		g, ok := groups[kk]
		if !ok {
			g = &group{name: s.Name}
			groups[kk] = g
			orderByLocation[s.Location] = append(orderByLocation[s.Location], kk)
		}
		g.reps += s.Repetitions
	}

	locations := make([]string, 0, len(orderByLocation))
	for loc := range orderByLocation {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	rows := make([]TopRepsRow, 0, len(locations))
	for _, loc := range locations {
		keys := orderByLocation[loc]
		ranked := make([]key, len(keys))
		copy(ranked, keys)
		sort.SliceStable(ranked, func(i, j int) bool {
			return groups[ranked[i]].reps > groups[ranked[j]].reps
		})
		if len(ranked) > k {
			ranked = ranked[:k]
		}
		for i, kk := range ranked {
			g := groups[kk]
			label := ""
			if i == 0 {
				label = loc
			}
			rows = append(rows, TopRepsRow{
				Location: loc,
				Label:    label,
				Rank:     i + 1,
				Name:     g.name,
				Email:    kk.email,
				Reps:     g.reps,
			})
		}
	}
	return rows, nil
}

// TotalVertical sums repetitions times the recorded vertical gain per email.
// Rows are sorted by total descending; ties break by email ascending. A
// positive limit takes the largest rows after sorting, with no re-aggregation.
func (e *Engine) TotalVertical(ctx context.Context, limit int) ([]VerticalRow, error) {
	subs, err := e.log.All(ctx)
	if err != nil {
		return nil, err
	}

	type group struct {
		name  string
		total float64
	}
	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, s := range subs {
		g, ok := groups[s.Email]
		if !ok {
			g = &group{name: s.Name}
			groups[s.Email] = g
			order = append(order, s.Email)
		}
		g.total += float64(s.Repetitions) * s.VerticalGain
	}

	rows := make([]VerticalRow, 0, len(order))
	for _, email := range order {
		g := groups[email]
		rows = append(rows, VerticalRow{
			Email:             email,
			Name:              g.name,
			TotalVerticalFeet: g.total,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalVerticalFeet != rows[j].TotalVerticalFeet {
			return rows[i].TotalVerticalFeet > rows[j].TotalVerticalFeet
		}
		return rows[i].Email < rows[j].Email
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// LocationStatus counts distinct locations appearing anywhere in the log
// against the fixed catalog size.
func (e *Engine) LocationStatus(ctx context.Context) ([]StatusRow, error) {
	subs, err := e.log.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, s := range subs {
		seen[s.Location] = struct{}{}
	}
	hilled := len(seen)

	return []StatusRow{
		{Status: StatusHilled, Count: hilled},
		{Status: StatusNotHilled, Count: e.catalog.Size() - hilled},
	}, nil
}

// ParticipantLocations reports one participant's total reps per location and
// their completion progress against the catalog. Email matching is exact.
// Locations are ordered ascending.
func (e *Engine) ParticipantLocations(ctx context.Context, email string) (ParticipantReport, error) {
	subs, err := e.log.All(ctx)
	if err != nil {
		return ParticipantReport{}, err
	}

	totals := make(map[string]int)
	for _, s := range subs {
		if s.Email != email {
			continue
		}
		totals[s.Location] += s.Repetitions
	}

	locations := make([]string, 0, len(totals))
	for loc := range totals {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	report := ParticipantReport{
		Email:     email,
		Locations: make([]LocationReps, 0, len(locations)),
	}
	for _, loc := range locations {
		report.Locations = append(report.Locations, LocationReps{Location: loc, TotalReps: totals[loc]})
		if totals[loc] > 0 {
			report.LocationsCompleted++
		}
	}
	report.PercentComplete = float64(report.LocationsCompleted) / float64(e.catalog.Size()) * 100
	return report, nil
}

// BuildSnapshot runs all four views against the current log. A store failure
// in any view fails the whole snapshot; no partial result is returned.
func (e *Engine) BuildSnapshot(ctx context.Context, topK int) (Snapshot, error) {
	start := time.Now()

	coverage, err := e.Coverage(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	topReps, err := e.TopPerLocation(ctx, topK)
	if err != nil {
		return Snapshot{}, err
	}
	vertical, err := e.TotalVertical(ctx, 0)
	if err != nil {
		return Snapshot{}, err
	}
	status, err := e.LocationStatus(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	metrics.RecordSnapshotRebuildDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateDistinctParticipants(len(coverage))
	metrics.UpdateHilledLocations(status[0].Count)

	return Snapshot{
		Coverage:       coverage,
		TopPerLocation: topReps,
		TotalVertical:  vertical,
		LocationStatus: status,
		BuiltAt:        time.Now(),
	}, nil
}
