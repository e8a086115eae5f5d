package config_test

import (
	"context"
	"testing"

	config "github.com/omahatools/bucketd/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given default configuration", t, func() {
		cfg := config.New(context.Background())

		Convey("Then it should carry sane defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.HandQueueSize, ShouldEqual, 100_000)
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			So(cfg.MemoSize, ShouldEqual, 500_000)
			So(cfg.MaxTallyLimit, ShouldEqual, 85)
			So(cfg.StrictInput, ShouldBeTrue)
		})
	})
}
