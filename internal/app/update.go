package app

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/msg"
	"github.com/marcus/pinboard/internal/palette"
	"github.com/marcus/pinboard/internal/pin"
	"github.com/marcus/pinboard/internal/settings"
)

// Update handles all messages and returns the updated model and commands.
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.palette.SetSize(message.Width, message.Height)
		m.ready = true
		if m.startupNotice != "" {
			m.ShowToast(m.startupNotice, 5*time.Second, true)
			m.startupNotice = ""
		}
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil

	case msg.LayoutChangedMsg:
		m.registry.Sweep(m.panel.Leaves())
		return m, nil

	case pin.RefreshRequestMsg:
		return m, m.doRefresh()

	case OpenEntryMsg:
		if err := m.rec.OpenEntry(message.Entry); err != nil {
			m.logger.Error("open entry failed", "id", message.Entry.ID, "err", err)
			m.ShowToast(err.Error(), 5*time.Second, true)
		}
		m.focus = PanePanel
		return m, msg.LayoutChanged()

	case VaultChangedMsg:
		m.renderer.Invalidate(message.Path)
		// A changed file set can make entries resolvable or stale. The
		// watcher already coalesced the burst, and a full refresh would
		// throw away scroll state, so resync in place.
		if s := refreshErrorSummary(m.rec.Resync()); s != "" {
			m.ShowToast(s, 5*time.Second, true)
		}
		m.registry.Sweep(m.panel.Leaves())
		return m, m.waitForVaultEvent()

	case openAddModalMsg:
		m.openEntryModal(nil)
		return m, nil

	case toggleAutoPinMsg:
		m.set.AutoPinTabs = !m.set.AutoPinTabs
		m.mutateAndRefresh()
		if m.set.AutoPinTabs {
			m.ShowToast("Auto-pin enabled", 2*time.Second, false)
		} else {
			m.ShowToast("Auto-pin disabled", 2*time.Second, false)
		}
		return m, nil

	case palette.ActionSelectedMsg:
		m.showPalette = false
		for _, a := range m.actions() {
			if a.ID == message.ActionID && a.Handler != nil {
				return m, a.Handler()
			}
		}
		return m, nil
	}

	return m, nil
}

// refreshErrorSummary collapses per-entry failures into a single toast
// line; showing them one by one would leave only the last visible.
func refreshErrorSummary(errs []error) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", errs[0].Error(), len(errs)-1)
	}
}

// doRefresh runs a full reconciliation pass and re-arms the refresh pump.
func (m *Model) doRefresh() tea.Cmd {
	if s := refreshErrorSummary(m.rec.Refresh()); s != "" {
		m.ShowToast(s, 5*time.Second, true)
	}

	// Keep the entries cursor and the registry consistent with what the
	// pass just did to the layout.
	m.registry.Sweep(m.panel.Leaves())
	m.clampCursor()

	return m.waitForRefresh()
}

// handleKeyMsg processes keyboard input.
func (m *Model) handleKeyMsg(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Entry form takes all input while open.
	if m.entryModal != nil {
		return m.updateEntryModal(key)
	}

	if m.showPalette {
		if key.Type == tea.KeyEsc {
			m.showPalette = false
			return m, nil
		}
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(key)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.teardown()
		return m, tea.Quit

	case "?":
		m.showPalette = true
		m.palette.SetSize(m.width, m.height)
		m.palette.Open(m.actions())
		return m, nil

	case "tab":
		if m.focus == PaneEntries {
			m.focus = PanePanel
		} else {
			m.focus = PaneEntries
		}
		return m, nil

	case "r":
		return m, RequestRefresh()

	case "P":
		return m.Update(toggleAutoPinMsg{})

	case "D":
		if !m.set.TipDismissed {
			m.set.TipDismissed = true // sticky once set
			m.saveSettings()
		}
		return m, nil
	}

	if m.focus == PaneEntries {
		return m.handleEntriesKey(key)
	}
	return m.handlePanelKey(key)
}

// handleEntriesKey processes input for the entry list (settings surface).
func (m *Model) handleEntriesKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "j", "down":
		if m.cursor < len(m.set.NoteEntries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.set.NoteEntries) - 1
		m.clampCursor()

	case "a":
		m.openEntryModal(nil)

	case "e":
		if e := m.selectedEntry(); e != nil {
			m.openEntryModal(e)
		}

	case "d":
		if e := m.selectedEntry(); e != nil {
			label := e.Label()
			m.set.RemoveEntry(e.ID)
			m.clampCursor()
			m.mutateAndRefresh()
			m.ShowToast("Unpinned "+label, 2*time.Second, false)
		}

	case "J":
		m.moveEntry(1)
	case "K":
		m.moveEntry(-1)

	case "enter", "o":
		if e := m.selectedEntry(); e != nil {
			entry := *e
			return m, func() tea.Msg { return OpenEntryMsg{Entry: entry} }
		}
	}
	return m, nil
}

// handlePanelKey processes input for the side panel.
func (m *Model) handlePanelKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "l", "right", "]":
		m.panel.Cycle(1)
	case "h", "left", "[":
		m.panel.Cycle(-1)

	case "j", "down":
		if leaf := m.panel.Active(); leaf != nil {
			leaf.Scroll++
		}
	case "k", "up":
		if leaf := m.panel.Active(); leaf != nil && leaf.Scroll > 0 {
			leaf.Scroll--
		}
	case "g":
		if leaf := m.panel.Active(); leaf != nil {
			leaf.Scroll = 0
		}

	case "x", "ctrl+w":
		// Manual close, outside the reconciler's control; the layout
		// notification sweeps the stale registry association.
		if m.panel.CloseAt(m.panel.ActiveIndex()) {
			return m, msg.LayoutChanged()
		}

	case "y":
		if leaf := m.panel.Active(); leaf != nil && leaf.File != nil {
			if err := clipboard.WriteAll(leaf.File.Path); err != nil {
				m.ShowToast("Copy failed: "+err.Error(), 2*time.Second, true)
			} else {
				m.ShowToast("Copied "+leaf.File.Path, 2*time.Second, false)
			}
		}
	}
	return m, nil
}

func (m *Model) selectedEntry() *settings.NoteEntry {
	if m.cursor < 0 || m.cursor >= len(m.set.NoteEntries) {
		return nil
	}
	return &m.set.NoteEntries[m.cursor]
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.set.NoteEntries) {
		m.cursor = len(m.set.NoteEntries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveEntry shifts the selected entry by delta in display order.
func (m *Model) moveEntry(delta int) {
	i := m.cursor
	j := i + delta
	if i < 0 || i >= len(m.set.NoteEntries) || j < 0 || j >= len(m.set.NoteEntries) {
		return
	}
	m.set.NoteEntries[i], m.set.NoteEntries[j] = m.set.NoteEntries[j], m.set.NoteEntries[i]
	m.cursor = j
	m.mutateAndRefresh()
}
