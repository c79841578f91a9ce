// Package palette implements the command palette overlay: a filterable
// list of every invocable action.
package palette

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/action"
)

const maxVisible = 10

// ActionSelectedMsg is sent when the user confirms an action.
type ActionSelectedMsg struct {
	ActionID string
}

// Model is the palette state.
type Model struct {
	textInput textinput.Model
	actions   []action.Action
	filtered  []action.Action
	cursor    int
	offset    int
	width     int
	height    int
}

// New creates a closed palette.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.CharLimit = 80
	ti.Width = 40
	return Model{textInput: ti}
}

// SetSize stores the window dimensions used when rendering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Open resets the palette over the given action set. Actions are grouped by
// category, stable within each.
func (m *Model) Open(actions []action.Action) {
	m.actions = make([]action.Action, len(actions))
	copy(m.actions, actions)
	sort.SliceStable(m.actions, func(i, j int) bool {
		return m.actions[i].Category < m.actions[j].Category
	})

	m.textInput.SetValue("")
	m.textInput.Focus()
	m.cursor = 0
	m.offset = 0
	m.applyFilter()
}

// Update handles palette input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.filtered) {
			id := m.filtered[m.cursor].ID
			return m, func() tea.Msg { return ActionSelectedMsg{ActionID: id} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter rebuilds the filtered list using a case-insensitive substring
// match over name and id.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.textInput.Value()))
	if query == "" {
		m.filtered = m.actions
	} else {
		m.filtered = nil
		for _, a := range m.actions {
			if strings.Contains(strings.ToLower(a.Name), query) ||
				strings.Contains(strings.ToLower(a.ID), query) {
				m.filtered = append(m.filtered, a)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisible {
		m.offset = m.cursor - maxVisible + 1
	}
}
