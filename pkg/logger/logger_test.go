package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hale/groundwork/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		err := logger.Init(logger.WithWriter(&buf))
		So(err, ShouldBeNil)
		log := logger.Get()
		ctx := context.Background()

		Convey("When logging at info level", func() {
			log.Info(ctx, "assessment fetched", logger.String("property", "prop-1"))

			Convey("Then the message and fields appear in the output", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "assessment fetched")
				So(out, ShouldContainSubstring, "property=prop-1")
			})
		})

		Convey("When logging below the active level", func() {
			log.Debug(ctx, "should be suppressed")

			Convey("Then nothing is written", func() {
				So(buf.String(), ShouldBeEmpty)
			})
		})

		Convey("When the level is lowered to debug", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			log.Debug(ctx, "now visible")

			Convey("Then debug entries are written", func() {
				So(buf.String(), ShouldContainSubstring, "now visible")
			})

			// Restore for other tests sharing the global level.
			So(logger.SetLevelString("info"), ShouldBeNil)
		})

		Convey("When using a named logger", func() {
			log.Named("workspace").Warn(ctx, "stale response dropped")

			Convey("Then the component field is attached", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "component=workspace")
				So(out, ShouldContainSubstring, "stale response dropped")
			})
		})
	})

	Convey("Given level strings", t, func() {
		Convey("Then valid levels parse", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
			So(logger.SetLevelString("info"), ShouldBeNil)
		})

		Convey("Then an unknown level is rejected", func() {
			err := logger.SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), "unknown log level"), ShouldBeTrue)
		})
	})
}
