package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/omahatools/bucketd/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	hand1 := model.Hand{RowID: "row1", Hole: "As2c7h9d", Board: "9c5d3h"}
	if !q.Enqueue(ctx, hand1) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	handChan := q.Dequeue(ctx)
	h := <-handChan
	if h.RowID != "row1" {
		t.Errorf("expected row1, got %v", h.RowID)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	hand1 := model.Hand{RowID: "row1", Hole: "As2c7h9d", Board: "9c5d3h"}
	hand2 := model.Hand{RowID: "row2", Hole: "KsKc2h3d", Board: "KdQc9h"}
	hand3 := model.Hand{RowID: "row3", Hole: "QsJc9h8d", Board: "Td7c2h"}

	if !q.Enqueue(ctx, hand1) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, hand2) {
		t.Error("expected enqueue to succeed")
	}

	// Enqueue when full must not block.
	if q.Enqueue(ctx, hand3) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()
	numGoroutines := 10
	numHands := 100

	done := make(chan bool, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			for j := 0; j < numHands; j++ {
				h := model.Hand{
					RowID: fmt.Sprintf("row%d_%d", id, j),
					Hole:  "As2c7h9d",
					Board: "9c5d3h",
				}
				for !q.Enqueue(ctx, h) {
					time.Sleep(time.Millisecond)
				}
			}
			done <- true
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		go func() {
			for range q.Dequeue(ctx) { //nolint:revive // drain
			}
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	time.Sleep(100 * time.Millisecond)

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	hand1 := model.Hand{RowID: "row1", Hole: "As2c7h9d", Board: "9c5d3h"}
	if !q.Enqueue(ctx, hand1) {
		t.Error("expected enqueue to succeed")
	}

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}

	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}

	if q.Enqueue(ctx, hand1) {
		t.Error("expected enqueue to fail after closing")
	}

	// The dequeue channel drains the remaining hand, then closes.
	handChan := q.Dequeue(ctx)
	timeout := time.After(100 * time.Millisecond)
	for {
		select {
		case _, ok := <-handChan:
			if !ok {
				goto channelClosed
			}
		case <-timeout:
			t.Error("expected dequeue channel to be closed within timeout")
			return
		}
	}
channelClosed:

	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
