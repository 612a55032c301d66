package delta_test

import (
	"testing"

	"github.com/hale/groundwork/internal/domain/delta"
	"github.com/hale/groundwork/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(v float64) *float64 { return &v }

func TestFormatValue(t *testing.T) {
	Convey("Given signed deltas", t, func() {
		So(delta.FormatValue(ptr(5)), ShouldEqual, "+5")
		So(delta.FormatValue(ptr(-3)), ShouldEqual, "-3")
		So(delta.FormatValue(ptr(0)), ShouldEqual, "0")
		So(delta.FormatValue(nil), ShouldEqual, "0")
		So(delta.FormatValue(ptr(2.5)), ShouldEqual, "+2.5")
	})
}

func TestFormatScore(t *testing.T) {
	Convey("Given score deltas", t, func() {
		So(delta.FormatScore(0), ShouldEqual, "held steady")
		So(delta.FormatScore(7), ShouldEqual, "improved by 7 points")
		So(delta.FormatScore(-12), ShouldEqual, "dropped 12 points")
		So(delta.FormatScore(-1.5), ShouldEqual, "dropped 1.5 points")
	})
}

func TestDescribeRatingChange(t *testing.T) {
	Convey("Given rating pairs", t, func() {
		Convey("An improvement is positive", func() {
			c := delta.DescribeRatingChange("A", "B")
			So(c.Tone, ShouldEqual, types.TonePositive)
			So(c.Text, ShouldEqual, "Improved from B to A")
		})

		Convey("A decline is negative", func() {
			c := delta.DescribeRatingChange("d", "B")
			So(c.Tone, ShouldEqual, types.ToneNegative)
			So(c.Text, ShouldEqual, "Slipped from B to D")
		})

		Convey("An unchanged rating is neutral", func() {
			c := delta.DescribeRatingChange("C", "c")
			So(c.Tone, ShouldEqual, types.ToneNeutral)
			So(c.Text, ShouldEqual, "Held at C")
		})

		Convey("An unknown rating is neutral and not comparable", func() {
			c := delta.DescribeRatingChange("", "B")
			So(c.Tone, ShouldEqual, types.ToneNeutral)
			So(c.Text, ShouldContainSubstring, "not comparable")
		})
	})
}

func TestDescribeRiskChange(t *testing.T) {
	Convey("Given risk level pairs", t, func() {
		Convey("Easing risk is positive", func() {
			c := delta.DescribeRiskChange("low", "elevated")
			So(c.Tone, ShouldEqual, types.TonePositive)
			So(c.Text, ShouldEqual, "Risk eased from elevated to low")
		})

		Convey("Rising risk is negative", func() {
			c := delta.DescribeRiskChange("critical", "moderate")
			So(c.Tone, ShouldEqual, types.ToneNegative)
			So(c.Text, ShouldEqual, "Risk rose from moderate to critical")
		})

		Convey("Unchanged risk is neutral", func() {
			c := delta.DescribeRiskChange("high", "HIGH")
			So(c.Tone, ShouldEqual, types.ToneNeutral)
			So(c.Text, ShouldEqual, "Risk unchanged at high")
		})

		Convey("Unknown levels are neutral", func() {
			c := delta.DescribeRiskChange("severe", "low")
			So(c.Tone, ShouldEqual, types.ToneNeutral)
		})
	})
}

func TestVisualLookups(t *testing.T) {
	Convey("Given the visual tables", t, func() {
		Convey("Every severity resolves to a style", func() {
			for _, s := range []types.Severity{
				types.SeverityCritical, types.SeverityWarning,
				types.SeverityPositive, types.SeverityNeutral, types.SeverityInfo,
			} {
				v := types.SeverityVisuals(s)
				So(v.Color, ShouldNotBeEmpty)
				So(v.Label, ShouldNotBeEmpty)
			}
		})

		Convey("Unknown severities fall back to neutral", func() {
			So(types.SeverityVisuals("bogus"), ShouldResemble, types.SeverityVisuals(types.SeverityNeutral))
		})

		Convey("Every tone resolves to a style", func() {
			for _, tone := range []types.Tone{types.TonePositive, types.ToneNegative, types.ToneNeutral} {
				So(types.DeltaVisuals(tone).Color, ShouldNotBeEmpty)
			}
			So(types.DeltaVisuals("bogus"), ShouldResemble, types.DeltaVisuals(types.ToneNeutral))
		})
	})
}
