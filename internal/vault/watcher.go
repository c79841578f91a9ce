package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event signals that the vault's file set changed and dependent state
// (path index, resolved entries) should be revalidated.
type Event struct {
	Path string // vault-relative path of the affected file, if known
}

// NewWatcher watches the vault tree for markdown changes and emits a
// coalesced Event after a quiet period. Rapid bursts (editor atomic saves,
// bulk renames) collapse into one event. Closing the returned stop function
// tears the watcher down.
func (v *Vault) NewWatcher() (<-chan Event, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// Watch the root and every existing subdirectory; fsnotify is not
	// recursive on its own.
	_ = filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != v.root {
				return filepath.SkipDir
			}
			_ = watcher.Add(p)
		}
		return nil
	})

	// events is never closed: a debounce callback can outlive the event
	// loop, and the app's channel pump does not need the close to stop.
	events := make(chan Event, 8)
	done := make(chan struct{})

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer
		var lastPath string
		debounceDelay := 200 * time.Millisecond

		for {
			select {
			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// New directories need their own watch.
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}

				if !strings.EqualFold(filepath.Ext(event.Name), ".md") {
					continue
				}
				if rel, err := filepath.Rel(v.root, event.Name); err == nil {
					lastPath = filepath.ToSlash(rel)
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				p := lastPath
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					// The timer's Stop on teardown does not wait for a
					// callback already in flight, so re-check done around
					// the slow reindex and at the send.
					select {
					case <-done:
						return
					default:
					}
					v.Reindex()
					select {
					case <-done:
					case events <- Event{Path: p}:
					default:
						// Channel full; the pending event already forces a revalidation.
					}
				})

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	var stopOnce sync.Once
	stop := func() { stopOnce.Do(func() { close(done) }) }
	return events, stop, nil
}
