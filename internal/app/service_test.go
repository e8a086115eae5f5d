package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/omahatools/bucketd/internal/app"
	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(50_000),
			service.WithMemoSize(25_000),
			service.WithStrictInput(true),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And stopping again is a no-op", func() {
				svc.Stop()
			})
		})
	})
}

func TestService_Classify(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When classifying a valid hand", func() {
			v, err := svc.Classify(ctx, "Ad2c7h9s", "9c5d3h")

			Convey("Then the vector fires the expected made hand", func() {
				So(err, ShouldBeNil)
				So(v.Has(buckets.TopPair), ShouldBeTrue)
				So(v.Has(buckets.Flush), ShouldBeFalse)
			})

			Convey("And classifying the same hand again hits the cache", func() {
				before := svc.Size()
				v2, err := svc.Classify(ctx, "Ad2c7h9s", "9c5d3h")
				So(err, ShouldBeNil)
				So(v2, ShouldResemble, v)
				So(svc.Size(), ShouldEqual, before)
			})
		})

		Convey("When classifying malformed input", func() {
			_, err := svc.Classify(ctx, "XZ9s7h2c", "9c5d3h")

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
