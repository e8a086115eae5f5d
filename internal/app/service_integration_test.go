package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	service "github.com/omahatools/bucketd/internal/app"
	"github.com/omahatools/bucketd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func waitForStat(svc *service.Service, key string, want int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if v, ok := svc.GetStats()[key].(int); ok && v >= want {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithQueueSize(1024),
			service.WithMemoSize(1024),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When processing hands end-to-end", func() {
			hands := []model.Hand{
				{RowID: "r1", Hole: "Ad2c7h9s", Board: "9c5d3h", TS: time.Now()},
				{RowID: "r2", Hole: "AsAc2h3d", Board: "KdQc9h", TS: time.Now()},
				{RowID: "r3", Hole: "KsQs2c3d", Board: "As5s9s", TS: time.Now()},
			}
			for _, h := range hands {
				So(svc.Enqueue(ctx, h), ShouldBeTrue)
			}

			Convey("Then the tally reflects the processed hands", func() {
				So(waitForStat(svc, "handsTallied", len(hands), 2*time.Second), ShouldBeTrue)

				top, err := svc.TopN(ctx, 5)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 5)
				So(top[0].Count, ShouldBeGreaterThan, 0)
			})

			Convey("And individual bucket ranks are available", func() {
				So(waitForStat(svc, "handsTallied", len(hands), 2*time.Second), ShouldBeTrue)

				entry, err := svc.Rank(ctx, "top_pair")
				So(err, ShouldBeNil)
				So(entry.Bucket, ShouldEqual, "top_pair")
				So(entry.Count, ShouldBeGreaterThanOrEqualTo, 1)
			})

			Convey("And malformed hands are dropped without stalling the pool", func() {
				So(svc.Enqueue(ctx, model.Hand{RowID: "bad", Hole: "nope", Board: "9c5d3h"}), ShouldBeTrue)
				So(svc.Enqueue(ctx, model.Hand{RowID: "r4", Hole: "Ah2h3c4d", Board: "5h6h7c"}), ShouldBeTrue)

				// Only the well-formed hand lands in the tally.
				So(waitForStat(svc, "handsTallied", len(hands)+1, 2*time.Second), ShouldBeTrue)
			})
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a service under concurrent load", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(10_000),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When multiple goroutines enqueue hands concurrently", func() {
			const producers = 8
			const perProducer = 100

			var wg sync.WaitGroup
			var mu sync.Mutex
			enqueued := 0
			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := 0; i < perProducer; i++ {
						h := model.Hand{
							RowID: fmt.Sprintf("p%d-r%d", p, i),
							Hole:  "Ad2c7h9s",
							Board: "9c5d3h",
						}
						if svc.Enqueue(ctx, h) {
							mu.Lock()
							enqueued++
							mu.Unlock()
						}
					}
				}(p)
			}
			wg.Wait()

			Convey("Then all hands should be processed", func() {
				So(enqueued, ShouldEqual, producers*perProducer)
				So(waitForStat(svc, "handsTallied", enqueued, 5*time.Second), ShouldBeTrue)
			})
		})

		Convey("When readers query the tally during writes", func() {
			go func() {
				for i := 0; i < 200; i++ {
					_ = svc.Enqueue(ctx, model.Hand{RowID: fmt.Sprintf("w%d", i), Hole: "Ad2c7h9s", Board: "9c5d3h"})
				}
			}()

			var wg sync.WaitGroup
			errs := make(chan error, 50)
			for r := 0; r < 10; r++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 5; i++ {
						if _, err := svc.TopN(ctx, 10); err != nil {
							errs <- err
						}
						if _, err := svc.Rank(ctx, "no_draw"); err != nil {
							errs <- err
						}
					}
				}()
			}
			wg.Wait()
			close(errs)

			Convey("Then all queries should succeed", func() {
				So(len(errs), ShouldEqual, 0)
			})
		})
	})
}
