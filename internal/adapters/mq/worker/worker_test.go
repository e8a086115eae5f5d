package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/omahatools/bucketd/internal/adapters/mq/queue"
	worker "github.com/omahatools/bucketd/internal/adapters/mq/worker"
	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/internal/domain/model"
	"github.com/omahatools/bucketd/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// stubClassifier returns a canned vector, or an error for hole "bad".
type stubClassifier struct {
	mu    sync.Mutex
	calls int
}

func (c *stubClassifier) Classify(ctx context.Context, hole, board string) (buckets.Vector, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if hole == "bad" {
		return buckets.Vector{}, errors.New("classify failed")
	}
	var v buckets.Vector
	v[buckets.NoDraw] = 1
	return v, nil
}

func (c *stubClassifier) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// captureRecorder collects recorded vectors.
type captureRecorder struct {
	mu      sync.Mutex
	vectors []buckets.Vector
	fail    bool
}

func (r *captureRecorder) Record(ctx context.Context, v buckets.Vector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("record failed")
	}
	r.vectors = append(r.vectors, v)
	return nil
}

func (r *captureRecorder) recorded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.vectors)
}

func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestInMemoryWorker(t *testing.T) {
	Convey("Given a worker wired to a queue", t, func() {
		_ = logger.Init()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		classifier := &stubClassifier{}
		recorder := &captureRecorder{}
		w := worker.NewInMemoryWorker(q, classifier, recorder, worker.WithName("worker-test"))

		go w.Run(ctx)

		Convey("When a hand is enqueued", func() {
			So(q.Enqueue(ctx, model.Hand{RowID: "r1", Hole: "As2c7h9d", Board: "9c5d3h"}), ShouldBeTrue)

			Convey("Then the worker classifies and records it", func() {
				So(waitFor(func() bool { return recorder.recorded() == 1 }, time.Second), ShouldBeTrue)
				So(classifier.callCount(), ShouldEqual, 1)
			})
		})

		Convey("When classification fails for one hand", func() {
			So(q.Enqueue(ctx, model.Hand{RowID: "r1", Hole: "bad", Board: "9c5d3h"}), ShouldBeTrue)
			So(q.Enqueue(ctx, model.Hand{RowID: "r2", Hole: "As2c7h9d", Board: "9c5d3h"}), ShouldBeTrue)

			Convey("Then the loop keeps going and records the good one", func() {
				So(waitFor(func() bool { return recorder.recorded() == 1 }, time.Second), ShouldBeTrue)
				So(classifier.callCount(), ShouldEqual, 2)
			})
		})

		Convey("When the worker is shut down", func() {
			err := w.Shutdown(ctx)

			Convey("Then shutdown completes without error", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers", t, func() {
		_ = logger.Init()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(128))
		classifier := &stubClassifier{}
		recorder := &captureRecorder{}
		pool := worker.NewPool(4, q, classifier, recorder)
		pool.Start(ctx)

		Convey("When many hands are enqueued", func() {
			const hands = 50
			for i := 0; i < hands; i++ {
				So(q.Enqueue(ctx, model.Hand{RowID: "r", Hole: "As2c7h9d", Board: "9c5d3h"}), ShouldBeTrue)
			}

			Convey("Then every hand is processed exactly once", func() {
				So(waitFor(func() bool { return recorder.recorded() == hands }, 2*time.Second), ShouldBeTrue)
				So(classifier.callCount(), ShouldEqual, hands)
			})
		})

		Convey("When the pool shuts down", func() {
			err := pool.Shutdown(ctx)

			Convey("Then the queue is closed and shutdown returns", func() {
				So(err, ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})
	})
}
