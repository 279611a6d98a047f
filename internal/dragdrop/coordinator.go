// Package dragdrop implements the gesture-tracking state machine behind the
// editor's reordering surfaces. The coordinator owns the active drag payload,
// resolves which registered drop zone is currently targeted, and hands the
// finished gesture to a caller-supplied reducer. It knows nothing about
// schemas; the canvas supplies all meaning through payload kinds.
package dragdrop

import "sync"

// PayloadKind tags what a drag is carrying so drop zones can decide
// acceptance.
type PayloadKind string

const (
	KindPaletteField   PayloadKind = "field-from-palette"
	KindFieldReorder   PayloadKind = "field-reorder"
	KindSectionReorder PayloadKind = "section-reorder"
	KindOptionReorder  PayloadKind = "option-reorder"
)

// Payload identifies what is being dragged.
type Payload struct {
	ID   string
	Kind PayloadKind
	Data any
}

// Action distinguishes a move from a copy on drop.
type Action string

const (
	ActionMove Action = "move"
	ActionCopy Action = "copy"
)

// Drop describes where and how a payload landed.
type Drop struct {
	ZoneID string
	Index  int
	Action Action
}

// Reducer applies a completed drop. It runs outside the coordinator's lock,
// after the gesture state has already been cleared.
type Reducer func(p Payload, d Drop)

// State is the coordinator's lifecycle position.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
)

type zone struct {
	accepts map[PayloadKind]bool
	enters  int
}

func (z *zone) acceptsKind(k PayloadKind) bool {
	return z.accepts[k]
}

// Coordinator tracks one drag gesture at a time. Idle is both the initial
// and the terminal state; every exit path from Dragging funnels through the
// same cleanup.
type Coordinator struct {
	mu      sync.Mutex
	state   State
	payload Payload
	zones   map[string]*zone
	hovered []string // enter order; the last entry is the active zone
	reducer Reducer
	scroll  *AutoScroller
}

// New creates an idle coordinator that applies drops through reduce.
func New(reduce Reducer) *Coordinator {
	return &Coordinator{
		state:   StateIdle,
		zones:   make(map[string]*zone),
		reducer: reduce,
	}
}

// SetReducer replaces the drop reducer.
func (c *Coordinator) SetReducer(reduce Reducer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reducer = reduce
}

// AttachScroller wires an auto-scroller that runs while a drag is active.
func (c *Coordinator) AttachScroller(s *AutoScroller) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll = s
}

// RegisterZone announces a drop zone and the payload kinds it accepts.
// Re-registering an id replaces its accept-list and resets its hover count.
func (c *Coordinator) RegisterZone(id string, accepts ...PayloadKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set := make(map[PayloadKind]bool, len(accepts))
	for _, k := range accepts {
		set[k] = true
	}
	c.zones[id] = &zone{accepts: set}
	c.removeHovered(id)
}

// UnregisterZone removes a zone entirely.
func (c *Coordinator) UnregisterZone(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.zones, id)
	c.removeHovered(id)
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActivePayload returns the in-flight payload while dragging.
func (c *Coordinator) ActivePayload() (Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDragging {
		return Payload{}, false
	}
	return c.payload, true
}

// BeginDrag starts tracking a gesture. A drag begun while another is active
// cancels the first one.
func (c *Coordinator) BeginDrag(p Payload) {
	c.mu.Lock()
	c.cleanupLocked()
	c.state = StateDragging
	c.payload = p
	c.mu.Unlock()
}

// Enter reports the pointer crossing into a zone. Nested element boundaries
// inside one logical zone produce repeated enter/leave pairs; the counter
// keeps the zone targeted until the real exit.
func (c *Coordinator) Enter(zoneID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	z, ok := c.zones[zoneID]
	if !ok || c.state != StateDragging {
		return
	}
	z.enters++
	if z.enters == 1 {
		c.hovered = append(c.hovered, zoneID)
	}
}

// Leave reports the pointer crossing out of a zone.
func (c *Coordinator) Leave(zoneID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	z, ok := c.zones[zoneID]
	if !ok || z.enters == 0 {
		return
	}
	z.enters--
	if z.enters == 0 {
		c.removeHovered(zoneID)
	}
}

// ActiveZone returns the id of the zone currently targeted, or "". With
// nested zones the most recently entered one wins.
func (c *Coordinator) ActiveZone() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.hovered) == 0 {
		return ""
	}
	return c.hovered[len(c.hovered)-1]
}

// InvalidateZones zeroes every hover counter and clears the active target.
// The canvas calls this after a structural mutation during an active drag:
// a zone removed from the document mid-drag would otherwise never decrement
// its counter and the target would stick.
func (c *Coordinator) InvalidateZones() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, z := range c.zones {
		z.enters = 0
	}
	c.hovered = nil
}

// PointerMoved feeds pointer position to the auto-scroller while dragging.
func (c *Coordinator) PointerMoved(y float64) {
	c.mu.Lock()
	scroll := c.scroll
	dragging := c.state == StateDragging
	c.mu.Unlock()
	if dragging && scroll != nil {
		scroll.Pointer(y)
	}
}

// Drop completes the gesture over a zone. The payload is checked against the
// zone's accept-list; a rejected kind is a silent no-op, and either way all
// drag state is cleared before the reducer runs. copyModifier selects the
// copy action, otherwise the drop is a move.
func (c *Coordinator) Drop(zoneID string, index int, copyModifier bool) {
	c.mu.Lock()
	if c.state != StateDragging {
		c.mu.Unlock()
		return
	}
	payload := c.payload
	reduce := c.reducer
	z, ok := c.zones[zoneID]
	accepted := ok && z.acceptsKind(payload.Kind)
	c.cleanupLocked()
	c.mu.Unlock()

	if !accepted || reduce == nil {
		return
	}
	action := ActionMove
	if copyModifier {
		action = ActionCopy
	}
	reduce(payload, Drop{ZoneID: zoneID, Index: index, Action: action})
}

// Cancel aborts the gesture without a drop. It reaches the same cleanup as a
// successful drop.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupLocked()
}

// cleanupLocked clears all transient gesture state unconditionally: payload,
// hover counters, active target, and the auto-scroll timer.
func (c *Coordinator) cleanupLocked() {
	c.state = StateIdle
	c.payload = Payload{}
	for _, z := range c.zones {
		z.enters = 0
	}
	c.hovered = nil
	if c.scroll != nil {
		c.scroll.Stop()
	}
}

func (c *Coordinator) removeHovered(id string) {
	for i, h := range c.hovered {
		if h == id {
			c.hovered = append(c.hovered[:i], c.hovered[i+1:]...)
			return
		}
	}
}

// ComputeDropIndex resolves the insertion index for a pointer at y among
// siblings with the given vertical midpoints: the position of the first
// midpoint below the pointer, or the list length to append. An empty list
// always yields 0.
func ComputeDropIndex(pointerY float64, midpoints []float64) int {
	for i, mid := range midpoints {
		if mid > pointerY {
			return i
		}
	}
	return len(midpoints)
}
