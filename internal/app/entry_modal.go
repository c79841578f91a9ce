package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/settings"
)

const maxSuggestions = 8

// entryModal is the pin-a-note form: a vault-relative path with live
// autocomplete and an optional display name.
type entryModal struct {
	pathInput textinput.Model
	nameInput textinput.Model
	focus     int // 0 = path, 1 = name

	suggestions []string
	sugCursor   int // -1 when nothing highlighted

	// editID is the entry being edited, empty for a new pin.
	editID string
}

// openEntryModal opens the form, prefilled when editing an existing entry.
func (m *Model) openEntryModal(e *settings.NoteEntry) {
	pi := textinput.New()
	pi.Placeholder = "notes/inbox.md"
	pi.CharLimit = 256
	pi.Width = 40
	pi.Focus()

	ni := textinput.New()
	ni.Placeholder = "Display name (optional)"
	ni.CharLimit = 64
	ni.Width = 40

	em := &entryModal{
		pathInput: pi,
		nameInput: ni,
		sugCursor: -1,
	}
	if e != nil {
		em.editID = e.ID
		em.pathInput.SetValue(e.Path)
		em.pathInput.CursorEnd()
		em.nameInput.SetValue(e.DisplayName)
	}
	m.entryModal = em
	m.refreshSuggestions()
}

// refreshSuggestions recomputes the autocomplete dropdown from the current
// path input.
func (m *Model) refreshSuggestions() {
	em := m.entryModal
	em.suggestions = m.vault.Suggest(em.pathInput.Value(), maxSuggestions)
	em.sugCursor = -1
}

// updateEntryModal handles all input while the form is open.
func (m *Model) updateEntryModal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	em := m.entryModal

	switch key.String() {
	case "esc":
		m.entryModal = nil
		return m, nil

	case "tab", "shift+tab":
		em.focus = 1 - em.focus
		if em.focus == 0 {
			em.pathInput.Focus()
			em.nameInput.Blur()
		} else {
			em.pathInput.Blur()
			em.nameInput.Focus()
		}
		return m, textinput.Blink

	case "down", "ctrl+n":
		if em.focus == 0 && len(em.suggestions) > 0 {
			if em.sugCursor < len(em.suggestions)-1 {
				em.sugCursor++
			}
			return m, nil
		}

	case "up", "ctrl+p":
		if em.focus == 0 && em.sugCursor >= 0 {
			em.sugCursor--
			return m, nil
		}

	case "enter":
		// Enter on a highlighted suggestion accepts it; enter anywhere
		// else submits the form.
		if em.focus == 0 && em.sugCursor >= 0 && em.sugCursor < len(em.suggestions) {
			em.pathInput.SetValue(em.suggestions[em.sugCursor])
			em.pathInput.CursorEnd()
			em.sugCursor = -1
			em.suggestions = nil
			return m, nil
		}
		return m, m.submitEntryModal()
	}

	var cmd tea.Cmd
	if em.focus == 0 {
		before := em.pathInput.Value()
		em.pathInput, cmd = em.pathInput.Update(key)
		if em.pathInput.Value() != before {
			m.refreshSuggestions()
		}
	} else {
		em.nameInput, cmd = em.nameInput.Update(key)
	}
	return m, cmd
}

// submitEntryModal applies the form: adds or updates the entry, persists,
// and opens the note immediately.
func (m *Model) submitEntryModal() tea.Cmd {
	em := m.entryModal
	path := strings.TrimSpace(em.pathInput.Value())
	name := strings.TrimSpace(em.nameInput.Value())

	if path == "" {
		m.ShowToast("A note path is required", 2*time.Second, true)
		return nil
	}

	var entry settings.NoteEntry
	if em.editID != "" {
		for i := range m.set.NoteEntries {
			if m.set.NoteEntries[i].ID == em.editID {
				m.set.NoteEntries[i].Path = path
				m.set.NoteEntries[i].DisplayName = name
				entry = m.set.NoteEntries[i]
				break
			}
		}
	}
	if entry.ID == "" {
		entry = settings.NoteEntry{
			ID:          settings.NewEntryID(),
			Path:        path,
			DisplayName: name,
		}
		m.set.NoteEntries = append(m.set.NoteEntries, entry)
		m.cursor = len(m.set.NoteEntries) - 1
	}

	m.entryModal = nil
	m.mutateAndRefresh()

	// An unresolvable path is still saved; the tip banner and the
	// reconciler's skip behavior cover it.
	if _, err := m.vault.Resolve(path); err != nil {
		m.ShowToast("Pinned, but "+path+" does not exist yet", 3*time.Second, false)
		return nil
	}
	return func() tea.Msg { return OpenEntryMsg{Entry: entry} }
}
