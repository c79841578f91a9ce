package pin

import (
	"testing"
	"time"
)

func TestDebouncerCoalescesTriggers(t *testing.T) {
	ch := make(chan RefreshRequestMsg, 1)
	d := NewDebouncer(30*time.Millisecond, ch)
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no refresh request after quiet window")
	}

	// The burst above must collapse into exactly one request.
	select {
	case <-ch:
		t.Fatal("burst of triggers produced a second request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerTriggerRestartsWindow(t *testing.T) {
	ch := make(chan RefreshRequestMsg, 1)
	d := NewDebouncer(50*time.Millisecond, ch)
	defer d.Stop()

	d.Trigger()
	time.Sleep(25 * time.Millisecond)
	d.Trigger() // restarts the window

	select {
	case <-ch:
		t.Fatal("request delivered before the restarted window closed")
	case <-time.After(20 * time.Millisecond):
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no refresh request after restarted window")
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	ch := make(chan RefreshRequestMsg, 1)
	d := NewDebouncer(30*time.Millisecond, ch)

	d.Trigger()
	d.Stop()

	select {
	case <-ch:
		t.Fatal("request delivered after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerTriggerAfterStop(t *testing.T) {
	ch := make(chan RefreshRequestMsg, 1)
	d := NewDebouncer(30*time.Millisecond, ch)

	d.Trigger()
	d.Stop()
	d.Trigger()
	defer d.Stop()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("debouncer unusable after Stop")
	}
}
