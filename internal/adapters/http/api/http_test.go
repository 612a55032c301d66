package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hale/groundwork/internal/adapters/http/api"
	"github.com/hale/groundwork/internal/adapters/repository"
	"github.com/hale/groundwork/internal/app"
	"github.com/hale/groundwork/internal/domain/checklist"
	"github.com/hale/groundwork/internal/domain/draft"
	"github.com/hale/groundwork/internal/domain/model"
	"github.com/hale/groundwork/internal/export"
)

type stubDeps struct {
	view         api.View
	history      []model.ConditionAssessment
	baseline     *model.ConditionAssessment
	comparisons  []api.Comparison
	savedDrafts  []draft.Assessment
	report       export.Report
	lastEntry    model.QuickAnalysisEntry
	signals      model.FeasibilitySignals
	items        []model.ChecklistItem
	setStatusErr error
}

func (s *stubDeps) AssessmentView(ctx context.Context, propertyID, scenario string) (api.View, error) {
	v := s.view
	v.PropertyID = propertyID
	return v, nil
}

func (s *stubDeps) History(ctx context.Context, propertyID, scenario string, limit int) ([]model.ConditionAssessment, error) {
	return s.history, nil
}

func (s *stubDeps) Comparisons(ctx context.Context, propertyID, baseline string) (*model.ConditionAssessment, []api.Comparison, error) {
	return s.baseline, s.comparisons, nil
}

func (s *stubDeps) SaveDraft(ctx context.Context, propertyID string, d draft.Assessment) (api.View, error) {
	s.savedDrafts = append(s.savedDrafts, d)
	return s.view, nil
}

func (s *stubDeps) Export(ctx context.Context, propertyID string, format export.Format) (export.Report, error) {
	return s.report, nil
}

func (s *stubDeps) Signals(entry model.QuickAnalysisEntry, zoning *model.ZoningContext, topMix *model.MixAllocation) model.FeasibilitySignals {
	s.lastEntry = entry
	return s.signals
}

func (s *stubDeps) ChecklistItems(ctx context.Context, propertyID, scenario string) ([]model.ChecklistItem, error) {
	return s.items, nil
}

func (s *stubDeps) ChecklistSummary(ctx context.Context, propertyID, scenario string) (checklist.Summary, error) {
	return checklist.Summarize(s.items), nil
}

func (s *stubDeps) SetChecklistStatus(ctx context.Context, itemID, status string) error {
	return s.setStatusErr
}

type stubStats struct{}

func (stubStats) GetStats() app.Stats {
	return app.Stats{Running: true, StartedAt: time.Now(), Workspaces: 2}
}

func newTestMux(deps *stubDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stubStats{}, 50).Register(context.Background(), mux)
	return mux
}

func TestAssessmentEndpoints(t *testing.T) {
	Convey("Given the registered routes", t, func() {
		deps := &stubDeps{}
		mux := newTestMux(deps)

		Convey("When GET /assessment lacks the property parameter", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessment", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When GET /assessment names a property", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessment?property=prop-1", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"property_id":"prop-1"`)
		})

		Convey("When POST /assessment carries a draft document", func() {
			body := strings.NewReader(`{
				"scenario": "raw_land",
				"overall_rating": "B",
				"overall_score": "68.5",
				"risk_level": "moderate",
				"summary": "walkthrough notes",
				"actions_text": "fence the site\ncommission survey"
			}`)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assessment?property=prop-1", body))

			So(rec.Code, ShouldEqual, http.StatusCreated)
			So(deps.savedDrafts, ShouldHaveLength, 1)
			So(deps.savedDrafts[0].Scenario, ShouldEqual, "raw_land")
			So(deps.savedDrafts[0].OverallScore, ShouldEqual, "68.5")
		})

		Convey("When POST /assessment carries malformed JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assessment?property=prop-1", strings.NewReader("{")))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When GET /assessment/history has a bad limit", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessment/history?property=prop-1&limit=zero", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When GET /assessment/history exceeds the limit cap", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessment/history?property=prop-1&limit=500", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})

		Convey("When GET /assessment/history has no entries", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessment/history?property=prop-1", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
		})
	})
}

func TestExportEndpoint(t *testing.T) {
	Convey("Given a report ready to download", t, func() {
		deps := &stubDeps{report: export.Report{
			Data:        []byte(`{"title":"x"}`),
			Filename:    "condition-report-prop-1-20260301-120000.json",
			ContentType: "application/json",
		}}
		mux := newTestMux(deps)

		Convey("When requesting a known format", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessment/export?property=prop-1&format=json", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Disposition"), ShouldContainSubstring, "condition-report-prop-1")
			So(rec.Header().Get("Content-Type"), ShouldEqual, "application/json")
		})

		Convey("When requesting an unknown format", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessment/export?property=prop-1&format=docx", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestSignalsEndpoint(t *testing.T) {
	Convey("Given the signals route", t, func() {
		deps := &stubDeps{signals: model.FeasibilitySignals{Opportunities: []string{"headroom"}}}
		mux := newTestMux(deps)

		Convey("When posting a quick analysis entry", func() {
			body := strings.NewReader(`{
				"scenario": "raw_land",
				"metrics": {"site_area_sqm": 5000, "land_title": "freehold", "uses": ["residential"]},
				"notes": ["corner plot"]
			}`)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signals", body))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "headroom")

			Convey("Then untyped metrics are coerced at the boundary", func() {
				So(deps.lastEntry.Scenario, ShouldEqual, "raw_land")
				So(deps.lastEntry.Metrics.Get("site_area_sqm").Kind, ShouldEqual, model.MetricNumber)
				So(deps.lastEntry.Metrics.Get("land_title").Kind, ShouldEqual, model.MetricText)
				So(deps.lastEntry.Metrics.Get("uses").Kind, ShouldEqual, model.MetricList)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signals", strings.NewReader("nope")))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestChecklistEndpoints(t *testing.T) {
	Convey("Given checklist items behind the API", t, func() {
		deps := &stubDeps{items: []model.ChecklistItem{
			{ID: "c-1", Category: "legal", Status: model.ChecklistCompleted},
			{ID: "c-2", Category: "site", Status: model.ChecklistPending},
		}}
		mux := newTestMux(deps)

		Convey("When fetching the summary", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checklist/summary?property=prop-1", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"completion_percentage":50`)
		})

		Convey("When updating a status", func() {
			body := strings.NewReader(`{"item_id":"c-2","status":"completed"}`)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checklist/status", body))
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the status value is rejected", func() {
			deps.setStatusErr = repository.ErrInvalidStatus
			body := strings.NewReader(`{"item_id":"c-2","status":"done"}`)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checklist/status", body))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the item does not exist", func() {
			deps.setStatusErr = repository.ErrNotFound
			body := strings.NewReader(`{"item_id":"ghost","status":"completed"}`)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checklist/status", body))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats route", t, func() {
		mux := newTestMux(&stubDeps{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

		Convey("Then service stats are returned", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"workspaces":2`)
		})
	})
}
