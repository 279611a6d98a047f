package dragdrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDropIndex(t *testing.T) {
	// Empty list: always 0.
	assert.Equal(t, 0, ComputeDropIndex(0, nil))
	assert.Equal(t, 0, ComputeDropIndex(999, []float64{}))

	mids := []float64{10, 30, 50}
	assert.Equal(t, 0, ComputeDropIndex(5, mids))
	assert.Equal(t, 1, ComputeDropIndex(25, mids))
	assert.Equal(t, 2, ComputeDropIndex(35, mids))
	assert.Equal(t, 3, ComputeDropIndex(55, mids))
}

func TestDropInvokesReducer(t *testing.T) {
	var got []Drop
	var gotPayload Payload
	c := New(func(p Payload, d Drop) {
		gotPayload = p
		got = append(got, d)
	})
	c.RegisterZone("items", KindFieldReorder, KindPaletteField)

	c.BeginDrag(Payload{ID: "f1", Kind: KindFieldReorder})
	assert.Equal(t, StateDragging, c.State())

	c.Enter("items")
	assert.Equal(t, "items", c.ActiveZone())

	c.Drop("items", 2, false)

	require.Len(t, got, 1)
	assert.Equal(t, Drop{ZoneID: "items", Index: 2, Action: ActionMove}, got[0])
	assert.Equal(t, "f1", gotPayload.ID)
	assert.Equal(t, StateIdle, c.State())
}

func TestCopyModifierSelectsCopy(t *testing.T) {
	var got Drop
	c := New(func(_ Payload, d Drop) { got = d })
	c.RegisterZone("items", KindFieldReorder)

	c.BeginDrag(Payload{ID: "f1", Kind: KindFieldReorder})
	c.Drop("items", 0, true)
	assert.Equal(t, ActionCopy, got.Action)
}

func TestRejectedKindIsSilentNoOp(t *testing.T) {
	called := false
	c := New(func(Payload, Drop) { called = true })
	c.RegisterZone("sections", KindSectionReorder)

	c.BeginDrag(Payload{ID: "f1", Kind: KindFieldReorder})
	c.Enter("sections")
	c.Drop("sections", 0, false)

	assert.False(t, called, "reducer must not run for a rejected kind")
	// Drag state still cleans up normally.
	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, c.ActiveZone())
}

func TestNestedEnterLeaveRefCounting(t *testing.T) {
	c := New(nil)
	c.RegisterZone("outer", KindFieldReorder)

	c.BeginDrag(Payload{ID: "f1", Kind: KindFieldReorder})

	// Crossing a child boundary inside the same logical zone fires an
	// extra enter/leave pair; the zone must stay targeted throughout.
	c.Enter("outer")
	c.Enter("outer")
	c.Leave("outer")
	assert.Equal(t, "outer", c.ActiveZone())

	c.Leave("outer")
	assert.Empty(t, c.ActiveZone())
}

func TestNestedZonesLastEnteredWins(t *testing.T) {
	c := New(nil)
	c.RegisterZone("outer", KindFieldReorder)
	c.RegisterZone("inner", KindFieldReorder)

	c.BeginDrag(Payload{ID: "f1", Kind: KindFieldReorder})
	c.Enter("outer")
	c.Enter("inner")
	assert.Equal(t, "inner", c.ActiveZone())

	c.Leave("inner")
	assert.Equal(t, "outer", c.ActiveZone())
}

func TestInvalidateZonesClearsStaleCounters(t *testing.T) {
	c := New(nil)
	c.RegisterZone("doomed", KindFieldReorder)

	c.BeginDrag(Payload{ID: "f1", Kind: KindFieldReorder})
	c.Enter("doomed")
	c.Enter("doomed")
	require.Equal(t, "doomed", c.ActiveZone())

	// The zone's element was removed mid-drag; its leave events will never
	// arrive. Invalidate must unstick the target.
	c.InvalidateZones()
	assert.Empty(t, c.ActiveZone())

	// Counters restart from zero afterwards.
	c.Enter("doomed")
	c.Leave("doomed")
	assert.Empty(t, c.ActiveZone())
}

// residual captures everything that must be empty after a drag ends.
type residual struct {
	state      State
	payloadOK  bool
	activeZone string
	scrolling  bool
}

func snapshot(c *Coordinator, a *AutoScroller) residual {
	_, ok := c.ActivePayload()
	return residual{
		state:      c.State(),
		payloadOK:  ok,
		activeZone: c.ActiveZone(),
		scrolling:  a.Running(),
	}
}

func TestCleanupIdenticalForDropAndCancel(t *testing.T) {
	run := func(end func(c *Coordinator)) residual {
		sc := &fakeScroller{content: 1000, viewport: 100}
		a := NewAutoScroller(sc)
		c := New(func(Payload, Drop) {})
		c.AttachScroller(a)
		c.RegisterZone("items", KindFieldReorder)

		c.BeginDrag(Payload{ID: "f1", Kind: KindFieldReorder})
		c.Enter("items")
		c.PointerMoved(99) // inside the bottom band, timer starts
		require.True(t, a.Running())

		end(c)
		return snapshot(c, a)
	}

	viaDrop := run(func(c *Coordinator) { c.Drop("items", 0, false) })
	viaCancel := run(func(c *Coordinator) { c.Cancel() })

	want := residual{state: StateIdle, payloadOK: false, activeZone: "", scrolling: false}
	assert.Equal(t, want, viaDrop)
	assert.Equal(t, want, viaCancel)
}

func TestBeginDragWhileDraggingRestarts(t *testing.T) {
	c := New(nil)
	c.RegisterZone("items", KindFieldReorder)

	c.BeginDrag(Payload{ID: "a", Kind: KindFieldReorder})
	c.Enter("items")
	c.BeginDrag(Payload{ID: "b", Kind: KindFieldReorder})

	p, ok := c.ActivePayload()
	require.True(t, ok)
	assert.Equal(t, "b", p.ID)
	assert.Empty(t, c.ActiveZone(), "hover state from the first drag must not leak")
}

func TestDropWhileIdleIsNoOp(t *testing.T) {
	called := false
	c := New(func(Payload, Drop) { called = true })
	c.RegisterZone("items", KindFieldReorder)
	c.Drop("items", 0, false)
	assert.False(t, called)
}
