package config_test

import (
	"testing"

	"github.com/okian/ktready/internal/config"
	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DatasetPath, convey.ShouldEqual, "")
			convey.So(cfg.ProgressPolicy, convey.ShouldEqual, "round")
			convey.So(cfg.RequireCoordinates, convey.ShouldBeTrue)
			convey.So(cfg.MarkerJitter, convey.ShouldEqual, 0.2)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.Policy(), convey.ShouldEqual, readiness.Round)
		})
	})
}
