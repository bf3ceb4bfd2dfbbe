package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hillchallenge/hillboard/internal/adapters/http/api"
	repository "github.com/hillchallenge/hillboard/internal/adapters/repository"
	"github.com/hillchallenge/hillboard/internal/domain/board"
	"github.com/hillchallenge/hillboard/internal/domain/model"
	"github.com/hillchallenge/hillboard/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	submitResult model.Submission
	submitErr    error
	submitted    []model.CandidateSubmission

	snapshot    board.Snapshot
	coverage    []board.CoverageRow
	topReps     []board.TopRepsRow
	vertical    []board.VerticalRow
	status      []board.StatusRow
	report      board.ParticipantReport
	lastTopK    int
	lastLimit   int
	lastEmail   string
	queryErr    error
	snapshotErr error
}

func (m *mockDependencies) SubmitCandidate(ctx context.Context, c model.CandidateSubmission) (model.Submission, error) {
	m.submitted = append(m.submitted, c)
	if m.submitErr != nil {
		return model.Submission{}, m.submitErr
	}
	return m.submitResult, nil
}

func (m *mockDependencies) Snapshot(ctx context.Context, topK int) (board.Snapshot, error) {
	m.lastTopK = topK
	if m.snapshotErr != nil {
		return board.Snapshot{}, m.snapshotErr
	}
	return m.snapshot, nil
}

func (m *mockDependencies) Coverage(ctx context.Context) ([]board.CoverageRow, error) {
	return m.coverage, m.queryErr
}

func (m *mockDependencies) TopPerLocation(ctx context.Context, k int) ([]board.TopRepsRow, error) {
	m.lastTopK = k
	if k < 1 {
		return nil, board.ErrInvalidTopK
	}
	return m.topReps, m.queryErr
}

func (m *mockDependencies) TotalVertical(ctx context.Context, limit int) ([]board.VerticalRow, error) {
	m.lastLimit = limit
	return m.vertical, m.queryErr
}

func (m *mockDependencies) LocationStatus(ctx context.Context) ([]board.StatusRow, error) {
	return m.status, m.queryErr
}

func (m *mockDependencies) ParticipantLocations(ctx context.Context, email string) (board.ParticipantReport, error) {
	m.lastEmail = email
	if m.queryErr != nil {
		return board.ParticipantReport{}, m.queryErr
	}
	return m.report, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"submissions": 3}}, 20, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{}
		mux := newTestMux(deps)

		Convey("When registering routes", func() {
			Convey("Then the health endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("Then the stats endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["submissions"], ShouldEqual, 3)
			})
		})
	})
}

func TestSubmissionsEndpoint(t *testing.T) {
	Convey("Given a server accepting submissions", t, func() {
		deps := &mockDependencies{
			submitResult: model.Submission{ID: "sub-123", Email: "a@x.com"},
		}
		mux := newTestMux(deps)

		Convey("When posting a well-formed submission", func() {
			body := `{"name":"Ada","email":"a@x.com","location":"Summit Ave","repetitions":"4","strava_link":""}`
			req := httptest.NewRequest("POST", "/submissions", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be accepted with its stored ID", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var ack map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["status"], ShouldEqual, "accepted")
				So(ack["id"], ShouldEqual, "sub-123")
			})

			Convey("Then the raw fields should reach the service untouched", func() {
				So(len(deps.submitted), ShouldEqual, 1)
				So(deps.submitted[0].Repetitions, ShouldEqual, "4")
				So(deps.submitted[0].Location, ShouldEqual, "Summit Ave")
			})
		})

		Convey("When posting a malformed body", func() {
			req := httptest.NewRequest("POST", "/submissions", strings.NewReader("{nope"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(len(deps.submitted), ShouldEqual, 0)
			})
		})

		Convey("When validation rejects the submission", func() {
			deps.submitErr = validate.UnknownLocation("Mount Doom")
			body := `{"name":"Ada","email":"a@x.com","location":"Mount Doom","repetitions":"4"}`
			req := httptest.NewRequest("POST", "/submissions", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the error names the kind and the offending value", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "unknown_location")
				So(resp["field"], ShouldEqual, "Mount Doom")
			})
		})

		Convey("When a missing field is rejected", func() {
			deps.submitErr = validate.MissingField("email")
			body := `{"name":"Ada","location":"Summit Ave","repetitions":"4"}`
			req := httptest.NewRequest("POST", "/submissions", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the response carries the field name", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "missing_field")
				So(resp["field"], ShouldEqual, "email")
			})
		})

		Convey("When the store fails", func() {
			deps.submitErr = repository.ErrStore
			body := `{"name":"Ada","email":"a@x.com","location":"Summit Ave","repetitions":"4"}`
			req := httptest.NewRequest("POST", "/submissions", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should answer 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest("GET", "/submissions", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should answer 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestLeaderboardEndpoints(t *testing.T) {
	Convey("Given a server with leaderboard data", t, func() {
		deps := &mockDependencies{
			snapshot: board.Snapshot{
				Coverage: []board.CoverageRow{{Name: "Ada", Email: "a@x.com", LocationsCovered: 3}},
				BuiltAt:  time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC),
			},
			coverage: []board.CoverageRow{
				{Name: "Ada", Email: "a@x.com", LocationsCovered: 3},
				{Name: "Bo", Email: "b@x.com", LocationsCovered: 1},
			},
			topReps: []board.TopRepsRow{
				{Location: "Summit Ave", Label: "Summit Ave", Rank: 1, Name: "Ada", Email: "a@x.com", Reps: 9},
			},
			vertical: []board.VerticalRow{
				{Email: "a@x.com", Name: "Ada", TotalVerticalFeet: 2100},
			},
			status: []board.StatusRow{
				{Status: board.StatusHilled, Count: 12},
				{Status: board.StatusNotHilled, Count: 28},
			},
		}
		mux := newTestMux(deps)

		Convey("When requesting the full snapshot", func() {
			req := httptest.NewRequest("GET", "/leaderboard", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then all views come back at once", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastTopK, ShouldEqual, 20)

				var snap map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &snap), ShouldBeNil)
				So(snap, ShouldContainKey, "coverage")
				So(snap, ShouldContainKey, "top_per_location")
				So(snap, ShouldContainKey, "total_vertical")
				So(snap, ShouldContainKey, "location_status")
				So(snap, ShouldContainKey, "built_at")
			})
		})

		Convey("When requesting coverage", func() {
			req := httptest.NewRequest("GET", "/leaderboard/coverage", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the rows survive the trip", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var rows []board.CoverageRow
				So(json.Unmarshal(w.Body.Bytes(), &rows), ShouldBeNil)
				So(rows, ShouldResemble, deps.coverage)
			})
		})

		Convey("When requesting top reps without k", func() {
			req := httptest.NewRequest("GET", "/leaderboard/top-reps", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the configured default depth is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastTopK, ShouldEqual, 20)
			})
		})

		Convey("When requesting top reps with k=1", func() {
			req := httptest.NewRequest("GET", "/leaderboard/top-reps?k=1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the depth is passed through", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastTopK, ShouldEqual, 1)
			})
		})

		Convey("When requesting top reps with an invalid k", func() {
			for _, raw := range []string{"0", "-3", "two"} {
				req := httptest.NewRequest("GET", "/leaderboard/top-reps?k="+raw, nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When requesting vertical standings without a limit", func() {
			req := httptest.NewRequest("GET", "/leaderboard/vertical", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the full standings are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 0)

				var rows []board.VerticalRow
				So(json.Unmarshal(w.Body.Bytes(), &rows), ShouldBeNil)
				So(rows[0].TotalVerticalFeet, ShouldEqual, 2100)
			})
		})

		Convey("When requesting vertical standings with a limit", func() {
			req := httptest.NewRequest("GET", "/leaderboard/vertical?limit=5", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 5)
		})

		Convey("When the limit exceeds the configured maximum", func() {
			req := httptest.NewRequest("GET", "/leaderboard/vertical?limit=101", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When requesting location status", func() {
			req := httptest.NewRequest("GET", "/leaderboard/status", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then both status rows come back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var rows []board.StatusRow
				So(json.Unmarshal(w.Body.Bytes(), &rows), ShouldBeNil)
				So(len(rows), ShouldEqual, 2)
				So(rows[0].Status, ShouldEqual, board.StatusHilled)
			})
		})

		Convey("When a read fails", func() {
			deps.queryErr = errors.New("log unavailable")
			req := httptest.NewRequest("GET", "/leaderboard/coverage", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestParticipantsEndpoint(t *testing.T) {
	Convey("Given a server with participant data", t, func() {
		deps := &mockDependencies{
			report: board.ParticipantReport{
				Email: "a@x.com",
				Locations: []board.LocationReps{
					{Location: "Summit Ave", TotalReps: 9},
				},
				LocationsCompleted: 1,
				PercentComplete:    2.5,
			},
		}
		mux := newTestMux(deps)

		Convey("When requesting a participant report", func() {
			req := httptest.NewRequest("GET", "/participants/a@x.com/locations", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the report comes back for the exact email", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastEmail, ShouldEqual, "a@x.com")

				var report board.ParticipantReport
				So(json.Unmarshal(w.Body.Bytes(), &report), ShouldBeNil)
				So(report.PercentComplete, ShouldEqual, 2.5)
				So(report.LocationsCompleted, ShouldEqual, 1)
			})
		})

		Convey("When the path has no email segment", func() {
			req := httptest.NewRequest("GET", "/participants/locations", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the path misses the locations suffix", func() {
			req := httptest.NewRequest("GET", "/participants/a@x.com", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest("POST", "/participants/a@x.com/locations", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
