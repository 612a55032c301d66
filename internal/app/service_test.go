package app

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hale/groundwork/internal/domain/draft"
	"github.com/hale/groundwork/internal/domain/model"
)

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a configured service", t, func() {
		store := newFakeStore()
		svc, err := New(WithStore(store), WithHistoryLimit(5))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When the service has not been started", func() {
			_, err := svc.Workspace("prop-1")
			So(err, ShouldEqual, ErrNotRunning)
		})

		Convey("When started", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then workspaces are created once per property", func() {
				a, err := svc.Workspace("prop-1")
				So(err, ShouldBeNil)
				b, err := svc.Workspace("prop-1")
				So(err, ShouldBeNil)
				So(a, ShouldEqual, b)
				So(svc.GetStats().Workspaces, ShouldEqual, 1)
			})

			Convey("Then stopping drops the workspaces", func() {
				_, err := svc.Workspace("prop-1")
				So(err, ShouldBeNil)
				So(svc.Stop(ctx), ShouldBeNil)
				So(svc.GetStats().Running, ShouldBeFalse)
				_, err = svc.Workspace("prop-1")
				So(err, ShouldEqual, ErrNotRunning)
			})
		})
	})
}

func TestServiceSaveDraft(t *testing.T) {
	Convey("Given a running service", t, func() {
		store := newFakeStore()
		svc, err := New(WithStore(store))
		So(err, ShouldBeNil)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When a complete draft is submitted", func() {
			d := draft.Build(nil, model.ScenarioRawLand)
			d.Summary = "greenfield site walkthrough"
			view, err := svc.SaveDraft(ctx, "prop-1", d)

			Convey("Then it persists and the editor ends closed", func() {
				So(err, ShouldBeNil)
				So(view.EditorMode, ShouldEqual, EditorClosed)
				So(view.SaveMessage, ShouldEqual, "Assessment saved.")
				So(store.saved, ShouldHaveLength, 1)
				So(store.saved[0].Scenario, ShouldEqual, model.ScenarioRawLand)
				So(store.saved[0].Summary, ShouldEqual, "greenfield site walkthrough")
			})
		})
	})
}

func TestServiceSignals(t *testing.T) {
	Convey("Given a running service with a locale", t, func() {
		store := newFakeStore()
		svc, err := New(WithStore(store), WithLocale("en"))
		So(err, ShouldBeNil)

		Convey("When evaluating a raw land entry", func() {
			entry := model.QuickAnalysisEntry{
				Scenario: model.ScenarioRawLand,
				Metrics: model.Metrics{
					"potential_gfa_sqm": model.NumberMetric(20000),
					"site_area_sqm":     model.NumberMetric(5000),
				},
			}
			result := svc.Signals(entry, nil, nil)

			Convey("Then numbers render with grouping", func() {
				So(result.Opportunities, ShouldHaveLength, 1)
				So(result.Opportunities[0], ShouldContainSubstring, "20,000")
			})
		})
	})
}

func TestServiceChecklist(t *testing.T) {
	Convey("Given a running service with checklist items", t, func() {
		store := newFakeStore()
		store.checklist = []model.ChecklistItem{
			{ID: "c-1", Status: model.ChecklistCompleted, Category: "legal"},
			{ID: "c-2", Status: model.ChecklistPending, Category: "legal"},
			{ID: "c-3", Status: model.ChecklistInProgress, Category: "site"},
			{ID: "c-4", Status: model.ChecklistNotApplicable, Category: "site"},
		}
		svc, err := New(WithStore(store))
		So(err, ShouldBeNil)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When summarizing", func() {
			summary, err := svc.ChecklistSummary(ctx, "prop-1", "")
			So(err, ShouldBeNil)

			Convey("Then completion is rounded over all items", func() {
				So(summary.Counts.Total, ShouldEqual, 4)
				So(summary.Counts.Completed, ShouldEqual, 1)
				So(summary.CompletionPercentage, ShouldEqual, 25)
				So(summary.Categories, ShouldContainKey, "legal")
			})
		})
	})
}
