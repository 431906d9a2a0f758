package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/festa/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.EventQueueSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 500_000)
			convey.So(cfg.MaxRecommendations, convey.ShouldEqual, 100)
			convey.So(cfg.CentroidSamples, convey.ShouldEqual, 201)
		})

		convey.Convey("Then the interest blend weights should sum to 1", func() {
			convey.So(cfg.SimilarityWeight+cfg.CategoryWeight+cfg.HistoryWeight, convey.ShouldAlmostEqual, 1.0)
		})
	})
}
