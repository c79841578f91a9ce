package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/pin"
	"github.com/marcus/pinboard/internal/settings"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// OpenEntryMsg asks the app to open one entry's note in the side panel.
	OpenEntryMsg struct {
		Entry settings.NoteEntry
	}

	// VaultChangedMsg reports a coalesced vault filesystem change.
	VaultChangedMsg struct {
		Path string
	}

	// openAddModalMsg opens the pin-a-note form.
	openAddModalMsg struct{}

	// toggleAutoPinMsg flips the auto-pin flag.
	toggleAutoPinMsg struct{}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// RequestRefresh returns a command that requests an immediate
// reconciliation pass.
func RequestRefresh() tea.Cmd {
	return func() tea.Msg {
		return pin.RefreshRequestMsg{}
	}
}

// waitForRefresh pumps the debouncer's channel into the app loop. Re-armed
// after every delivery.
func (m *Model) waitForRefresh() tea.Cmd {
	return func() tea.Msg {
		req, ok := <-m.refreshCh
		if !ok {
			return nil
		}
		return req
	}
}

// waitForVaultEvent pumps watcher events into the app loop.
func (m *Model) waitForVaultEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.vaultEvents
		if !ok {
			return nil
		}
		return VaultChangedMsg{Path: ev.Path}
	}
}
