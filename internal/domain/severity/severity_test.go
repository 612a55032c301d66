package severity_test

import (
	"testing"

	"github.com/hale/groundwork/internal/domain/severity"
	"github.com/hale/groundwork/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func delta(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	Convey("Given the ordered severity rule table", t, func() {
		Convey("When the rating is missing", func() {
			So(severity.Classify("", delta(50)), ShouldEqual, types.SeverityNeutral)
			So(severity.Classify("   ", nil), ShouldEqual, types.SeverityNeutral)
		})

		Convey("When the rating is D or E the rating rule wins over any delta", func() {
			So(severity.Classify("D", delta(20)), ShouldEqual, types.SeverityCritical)
			So(severity.Classify("e", delta(100)), ShouldEqual, types.SeverityCritical)
			So(severity.Classify("D", nil), ShouldEqual, types.SeverityCritical)
		})

		Convey("When the score dropped sharply", func() {
			So(severity.Classify("B", delta(-10)), ShouldEqual, types.SeverityCritical)
			So(severity.Classify("A", delta(-15)), ShouldEqual, types.SeverityCritical)
		})

		Convey("When the score dropped moderately", func() {
			So(severity.Classify("B", delta(-5)), ShouldEqual, types.SeverityWarning)
			So(severity.Classify("A", delta(-7)), ShouldEqual, types.SeverityWarning)
		})

		Convey("When the score gained strongly", func() {
			So(severity.Classify("B", delta(8)), ShouldEqual, types.SeverityPositive)
			So(severity.Classify("B", delta(9)), ShouldEqual, types.SeverityPositive)
		})

		Convey("When the rating is C with a flat trend", func() {
			So(severity.Classify("C", delta(0)), ShouldEqual, types.SeverityWarning)
			So(severity.Classify("c", nil), ShouldEqual, types.SeverityWarning)
		})

		Convey("When a C rating gained strongly, the gain rule wins", func() {
			So(severity.Classify("C", delta(8)), ShouldEqual, types.SeverityPositive)
		})

		Convey("When the score gained modestly", func() {
			So(severity.Classify("B", delta(4)), ShouldEqual, types.SeverityPositive)
			So(severity.Classify("A", delta(5)), ShouldEqual, types.SeverityPositive)
		})

		Convey("When nothing else matches", func() {
			So(severity.Classify("B", delta(0)), ShouldEqual, types.SeverityNeutral)
			So(severity.Classify("A", delta(3)), ShouldEqual, types.SeverityNeutral)
			So(severity.Classify("B", delta(-4)), ShouldEqual, types.SeverityNeutral)
			So(severity.Classify("A", nil), ShouldEqual, types.SeverityNeutral)
		})

		Convey("When the rating is an unexpected token", func() {
			// Non-letter ratings still flow through the delta rules.
			So(severity.Classify("Z", delta(-12)), ShouldEqual, types.SeverityCritical)
			So(severity.Classify("Z", delta(0)), ShouldEqual, types.SeverityNeutral)
		})
	})
}
