// Package action defines the invocable commands surfaced in the command
// palette and bindable to keys.
package action

import tea "github.com/charmbracelet/bubbletea"

// Category groups actions for palette display.
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryNotes      Category = "Notes"
	CategoryEdit       Category = "Edit"
	CategorySystem     Category = "System"
)

// Action is one invocable command.
type Action struct {
	ID          string         // Unique identifier (e.g. "open-note:note-1")
	Name        string         // Display name (e.g. "Open Todo in Sidebar")
	Description string         // Longer description for the palette
	Category    Category       // Palette grouping
	Key         string         // Bound key hint, if any
	Handler     func() tea.Cmd // Action to execute
}
