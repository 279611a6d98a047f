package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matthewbaird/formcanvas/internal/event"
)

type collector struct {
	mu   sync.Mutex
	seen []event.Op
}

func (c *collector) HandleChange(_ context.Context, evt event.ChangeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, evt.Op)
	return nil
}

func (c *collector) ops() []event.Op {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event.Op, len(c.seen))
	copy(out, c.seen)
	return out
}

func TestBusDeliversInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := New(16)
	c := &collector{}
	b.Subscribe("collector", c)
	b.Start(ctx)

	b.Publish(ctx, event.NewChange(event.OpFieldInserted, "s1", "f1", "insert"))
	b.Publish(ctx, event.NewChange(event.OpFieldMoved, "s1", "f1", "move"))
	b.Publish(ctx, event.NewChange(event.OpFieldDeleted, "s1", "f1", "delete"))

	deadline := time.After(time.Second)
	for len(c.ops()) < 3 {
		select {
		case <-deadline:
			t.Fatalf("timed out; delivered %v", c.ops())
		case <-time.After(5 * time.Millisecond):
		}
	}

	got := c.ops()
	want := []event.Op{event.OpFieldInserted, event.OpFieldMoved, event.OpFieldDeleted}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery order[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBusStopDrains(t *testing.T) {
	ctx := context.Background()
	b := New(16)
	c := &collector{}
	b.Subscribe("collector", c)
	b.Start(ctx)

	b.Publish(ctx, event.NewChange(event.OpSectionAdded, "s1", "sec1", "add"))
	b.Stop()

	if len(c.ops()) != 1 {
		t.Fatalf("want 1 delivered after Stop, got %d", len(c.ops()))
	}
}
