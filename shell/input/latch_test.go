package input

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCheckForInputEmpty(t *testing.T) {
	l := NewLatch()
	if ev := l.CheckForInput(); ev != nil {
		t.Errorf("CheckForInput() on empty latch = %v, want nil", ev)
	}
}

func TestEventConsumedExactlyOnce(t *testing.T) {
	l := NewLatch()
	ev := &Event{
		Timestamp: time.Now(),
		Position:  mgl32.Vec3{0, 1.5, 0},
		Forward:   mgl32.Vec3{0, 0, -1},
	}
	l.Record(ev)

	got := l.CheckForInput()
	if got != ev {
		t.Fatalf("CheckForInput() = %v, want the recorded event", got)
	}
	if second := l.CheckForInput(); second != nil {
		t.Errorf("second CheckForInput() = %v, want nil", second)
	}
}

func TestSecondPressOverwritesFirst(t *testing.T) {
	l := NewLatch()
	first := &Event{Position: mgl32.Vec3{1, 0, 0}}
	second := &Event{Position: mgl32.Vec3{2, 0, 0}}

	l.Record(first)
	l.Record(second)

	if got := l.CheckForInput(); got != second {
		t.Errorf("CheckForInput() = %v, want the most recent event", got)
	}
	if got := l.CheckForInput(); got != nil {
		t.Errorf("overwritten event resurfaced: %v", got)
	}
}

func TestRecordNilIgnored(t *testing.T) {
	l := NewLatch()
	ev := &Event{Position: mgl32.Vec3{1, 0, 0}}
	l.Record(ev)
	l.Record(nil)

	if got := l.CheckForInput(); got != ev {
		t.Errorf("CheckForInput() = %v, want the recorded event after nil Record", got)
	}
}

func TestConcurrentRecordAndConsume(t *testing.T) {
	l := NewLatch()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			l.Record(&Event{Position: mgl32.Vec3{float32(i), 0, 0}})
		}
	}()

	consumed := 0
	for {
		select {
		case <-done:
			for l.CheckForInput() != nil {
				consumed++
			}
			if consumed > 1000 {
				t.Errorf("consumed %d events, more than were recorded", consumed)
			}
			return
		default:
			if l.CheckForInput() != nil {
				consumed++
			}
		}
	}
}
