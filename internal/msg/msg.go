// Package msg holds cross-cutting Bubble Tea messages.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // true for error toasts (red), false for success (green)
}

// ShowToast returns a command to show a toast message.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
		}
	}
}

// ShowErrorToast returns a command to show an error toast.
func ShowErrorToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
			IsError:  true,
		}
	}
}

// LayoutChangedMsg is emitted after any leaf open, close, or rearrange.
// The app responds by sweeping the leaf registry against the panel's live
// leaf set.
type LayoutChangedMsg struct{}

// LayoutChanged returns a command that emits LayoutChangedMsg.
func LayoutChanged() tea.Cmd {
	return func() tea.Msg {
		return LayoutChangedMsg{}
	}
}
