package draft_test

import (
	"testing"
	"time"

	"github.com/hale/groundwork/internal/domain/draft"
	"github.com/hale/groundwork/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildBlankDraft(t *testing.T) {
	Convey("Given no persisted assessment", t, func() {
		d := draft.Build(nil, model.ScenarioAll)

		Convey("Then the overall defaults apply", func() {
			So(d.Scenario, ShouldEqual, "all")
			So(d.OverallRating, ShouldEqual, "B")
			So(d.OverallScore, ShouldEqual, "75")
			So(d.RiskLevel, ShouldEqual, "moderate")
			So(d.Summary, ShouldBeEmpty)
			So(d.InspectorName, ShouldBeEmpty)
			So(d.RecordedAt, ShouldBeEmpty)
		})

		Convey("Then exactly the three default systems are synthesized", func() {
			So(d.Systems, ShouldHaveLength, 3)
			names := []string{}
			for _, s := range d.Systems {
				names = append(names, s.Name)
				So(s.Rating, ShouldEqual, "B")
				So(s.Score, ShouldEqual, "70")
				So(s.Notes, ShouldBeEmpty)
				So(s.ActionsText, ShouldBeEmpty)
			}
			So(names, ShouldResemble, draft.DefaultSystemNames())
		})

		Convey("And an empty active filter falls back to all", func() {
			So(draft.Build(nil, "").Scenario, ShouldEqual, "all")
		})

		Convey("And a concrete active filter carries into the draft", func() {
			So(draft.Build(nil, model.ScenarioRawLand).Scenario, ShouldEqual, "raw_land")
		})
	})
}

func TestBuildFromAssessment(t *testing.T) {
	Convey("Given a persisted assessment", t, func() {
		recorded := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)
		a := &model.ConditionAssessment{
			Scenario:        model.ScenarioExistingBuilding,
			OverallRating:   "C",
			OverallScore:    58.5,
			RiskLevel:       model.RiskElevated,
			Summary:         "Facade spalling on the east elevation",
			ScenarioContext: "Pre-acquisition walkthrough",
			InspectorName:   "R. Tan",
			RecordedAt:      recorded,
			Systems: []model.SystemCondition{
				{
					Name:               "Roofing",
					Rating:             "D",
					Score:              41,
					Notes:              "Ponding observed",
					RecommendedActions: []string{"Re-membrane", "Clear outlets"},
				},
			},
			RecommendedActions: []string{"Commission structural survey"},
			Attachments: []model.Attachment{
				{Label: "Survey report", URL: "https://files.example.com/survey.pdf"},
				{Label: "Site photos"},
			},
		}

		d := draft.Build(a, model.ScenarioAll)

		Convey("Then the assessment's own scenario wins over the filter", func() {
			So(d.Scenario, ShouldEqual, "existing_building")
		})

		Convey("Then numeric fields are stringified for input binding", func() {
			So(d.OverallScore, ShouldEqual, "58.5")
			So(d.Systems[0].Score, ShouldEqual, "41")
		})

		Convey("Then list fields are flattened to newline text", func() {
			So(d.Systems[0].ActionsText, ShouldEqual, "Re-membrane\nClear outlets")
			So(d.ActionsText, ShouldEqual, "Commission structural survey")
			So(d.AttachmentsText, ShouldEqual,
				"Survey report | https://files.example.com/survey.pdf\nSite photos")
		})

		Convey("Then the timestamp converts to the local-input format", func() {
			So(d.RecordedAt, ShouldEqual, "2026-03-14T09:30")
		})

		Convey("And an assessment without systems gets the defaults", func() {
			b := *a
			b.Systems = nil
			So(draft.Build(&b, "all").Systems, ShouldHaveLength, 3)
		})
	})
}

func TestScoreCoercion(t *testing.T) {
	Convey("Given score text from the editor", t, func() {
		Convey("Then numeric text parses", func() {
			So(draft.ParseScore("72"), ShouldEqual, 72.0)
			So(draft.ParseScore(" 58.5 "), ShouldEqual, 58.5)
		})

		Convey("Then non-numeric text coerces to 0 rather than failing", func() {
			So(draft.ParseScore("seventy"), ShouldEqual, 0.0)
			So(draft.ParseScore(""), ShouldEqual, 0.0)
			So(draft.ParseScore("7two"), ShouldEqual, 0.0)
		})
	})
}

func TestAttachmentsRoundTrip(t *testing.T) {
	Convey("Given attachment lists with non-empty labels", t, func() {
		cases := [][]model.Attachment{
			{},
			{{Label: "Deed"}},
			{{Label: "Survey", URL: "https://x.test/s.pdf"}},
			{
				{Label: "Valuation", URL: "https://x.test/v.pdf"},
				{Label: "Photos"},
				{Label: "Title search", URL: "https://x.test/t"},
			},
		}

		Convey("Then parse(format(xs)) reconstructs the label/url pairs", func() {
			for _, xs := range cases {
				So(draft.ParseAttachmentsText(draft.FormatAttachmentsText(xs)), ShouldResemble, xs)
			}
		})
	})

	Convey("Given degenerate attachment lines", t, func() {
		Convey("A URL-only line uses the URL as its label", func() {
			got := draft.ParseAttachmentsText(" | https://x.test/a.pdf")
			So(got, ShouldHaveLength, 1)
			So(got[0].Label, ShouldEqual, "https://x.test/a.pdf")
			So(got[0].URL, ShouldEqual, "https://x.test/a.pdf")
		})

		Convey("A bare separator falls back to the placeholder label", func() {
			got := draft.ParseAttachmentsText("|")
			So(got, ShouldHaveLength, 1)
			So(got[0].Label, ShouldEqual, "Attachment")
			So(got[0].URL, ShouldBeEmpty)
		})

		Convey("Blank lines are skipped", func() {
			So(draft.ParseAttachmentsText("\n  \n"), ShouldBeEmpty)
		})
	})
}

func TestPayload(t *testing.T) {
	Convey("Given a filled-in draft", t, func() {
		d := draft.Assessment{
			Scenario:      model.ScenarioRawLand,
			OverallRating: "A",
			OverallScore:  "88",
			RiskLevel:     model.RiskLow,
			Summary:       "Clean site",
			RecordedAt:    "2026-03-14T09:30",
			Systems: []draft.System{
				{Name: "Roofing", Rating: "B", Score: "not-a-number", Notes: "n", ActionsText: "Fix\n\nInspect"},
			},
			ActionsText:     "Survey\n",
			AttachmentsText: "Deed | https://x.test/d.pdf",
		}

		p := d.Payload()

		Convey("Then scores parse with the NaN-to-zero policy", func() {
			So(p.OverallScore, ShouldEqual, 88.0)
			So(p.Systems[0].Score, ShouldEqual, 0.0)
		})

		Convey("Then text lists parse dropping blanks", func() {
			So(p.Systems[0].RecommendedActions, ShouldResemble, []string{"Fix", "Inspect"})
			So(p.RecommendedActions, ShouldResemble, []string{"Survey"})
			So(p.Attachments, ShouldResemble, []model.Attachment{{Label: "Deed", URL: "https://x.test/d.pdf"}})
		})

		Convey("Then blank optional fields are omitted", func() {
			So(p.InspectorName, ShouldBeEmpty)
			So(p.ScenarioContext, ShouldBeEmpty)
		})

		Convey("Then the local timestamp converts to RFC3339", func() {
			ts, err := time.Parse(time.RFC3339, p.RecordedAt)
			So(err, ShouldBeNil)
			So(ts.Year(), ShouldEqual, 2026)
			So(ts.Minute(), ShouldEqual, 30)
		})
	})

	Convey("Given a draft with an unparseable timestamp", t, func() {
		d := draft.Assessment{OverallScore: "50", RecordedAt: "yesterday"}
		p := d.Payload()

		Convey("Then recorded_at is omitted and the scenario defaults to all", func() {
			So(p.RecordedAt, ShouldBeEmpty)
			So(p.Scenario, ShouldEqual, "all")
		})
	})
}
