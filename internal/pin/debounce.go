package pin

import (
	"sync"
	"time"
)

// DefaultQuietWindow is the debounce delay between a settings mutation and
// the refresh it triggers.
const DefaultQuietWindow = 250 * time.Millisecond

// RefreshRequestMsg is delivered when the quiet window closes; the app loop
// responds by running a full refresh.
type RefreshRequestMsg struct{}

// Debouncer collapses rapid refresh triggers into a single request after a
// quiet period. Each Trigger cancels and restarts the pending timer, so N
// mutations within the window produce exactly one request. It coalesces; it
// does not mutually exclude an in-flight refresh from a later trigger.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	window  time.Duration
	msgChan chan<- RefreshRequestMsg
}

// NewDebouncer creates a debouncer with the given quiet window. msgChan
// receives one RefreshRequestMsg per quiet period that follows a trigger.
func NewDebouncer(window time.Duration, msgChan chan<- RefreshRequestMsg) *Debouncer {
	if window == 0 {
		window = DefaultQuietWindow
	}
	return &Debouncer{
		window:  window,
		msgChan: msgChan,
	}
}

// Trigger schedules a refresh request, replacing any pending one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()

	if d.msgChan != nil {
		select {
		case d.msgChan <- RefreshRequestMsg{}:
		default:
			// Channel full; a refresh is already queued.
		}
	}
}

// Stop cancels any pending request. Call at teardown so no callback fires
// after the app loop is gone.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
