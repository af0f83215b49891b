package input

import (
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Event describes a single committed select gesture, stamped with the gaze
// pose at the moment the gesture fired.
type Event struct {
	// Timestamp is when the gesture was committed.
	Timestamp time.Time

	// Position is the head position at gesture time, in meters.
	Position mgl32.Vec3

	// Forward is the gaze direction at gesture time, normalized.
	Forward mgl32.Vec3
}

// latch is the implementation of the Latch interface.
type latch struct {
	// pending holds the most recent unconsumed event. A newer gesture
	// overwrites an unconsumed older one; only the latest is ever delivered.
	pending atomic.Pointer[Event]
}

// Latch captures select gestures from the input thread and hands exactly one
// event to the frame loop. Record and CheckForInput may run concurrently.
type Latch interface {
	// Record stores a gesture event, replacing any event not yet consumed.
	//
	// Parameters:
	//   - ev: the gesture event to latch
	Record(ev *Event)

	// CheckForInput returns the latched event and clears the latch, so each
	// gesture is delivered at most once. Returns nil when no gesture fired
	// since the last call.
	//
	// Returns:
	//   - *Event: the pending event, or nil
	CheckForInput() *Event
}

var _ Latch = &latch{}

// NewLatch creates a new empty Latch.
//
// Returns:
//   - Latch: the new latch with no pending event
func NewLatch() Latch {
	return &latch{}
}

func (l *latch) Record(ev *Event) {
	if ev == nil {
		return
	}
	l.pending.Store(ev)
}

func (l *latch) CheckForInput() *Event {
	return l.pending.Swap(nil)
}
