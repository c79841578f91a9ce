package app

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/pinboard/internal/styles"
	"github.com/marcus/pinboard/internal/workspace"
)

const (
	entriesPaneWidth = 32
	maxTabLabel      = 20
)

// View renders the full application.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(footer)

	left := m.renderEntriesPane(bodyHeight)
	right := m.renderPanelPane(m.width-lipgloss.Width(left), bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	base := lipgloss.JoinVertical(lipgloss.Left, body, footer)

	if m.entryModal != nil {
		return m.overlay(m.renderEntryModal())
	}
	if m.showPalette {
		return m.overlay(m.palette.View())
	}
	return base
}

// overlay centers content over a blank backdrop. Bubble Tea repaints the
// whole frame each cycle, so the base view does not need to show through.
func (m *Model) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderEntriesPane renders the pinned-entries list.
func (m *Model) renderEntriesPane(height int) string {
	var sb strings.Builder
	sb.WriteString(styles.PanelHeader.Render("Pinned Notes"))
	sb.WriteString("\n\n")

	if len(m.set.NoteEntries) == 0 {
		sb.WriteString(styles.Muted.Render("Nothing pinned yet."))
		sb.WriteString("\n")
		sb.WriteString(styles.Muted.Render("Press a to pin a note."))
	}

	for i, e := range m.set.NoteEntries {
		label := runewidth.Truncate(e.Label(), entriesPaneWidth-6, "…")
		line := label
		if _, err := m.vault.Resolve(e.Path); err != nil {
			line = label + " " + styles.Subtle.Render("(missing)")
		}
		cursor := "  "
		if i == m.cursor && m.focus == PaneEntries {
			cursor = styles.ListCursor.Render("> ")
			line = styles.ListItemSelected.Render(line)
		} else {
			line = styles.ListItemNormal.Render(line)
		}
		sb.WriteString(cursor + line + "\n")
	}

	if !m.set.TipDismissed {
		sb.WriteString("\n")
		sb.WriteString(styles.TipBanner.Render("Tip: tabs re-pin on refresh. D dismisses this."))
	}

	style := styles.PanelInactive
	if m.focus == PaneEntries {
		style = styles.PanelActive
	}
	return style.Width(entriesPaneWidth).Height(height - 2).Render(sb.String())
}

// renderPanelPane renders the side panel: the tab bar plus the active
// leaf's preview.
func (m *Model) renderPanelPane(width, height int) string {
	var sb strings.Builder

	leaves := m.panel.Leaves()
	if len(leaves) == 0 {
		sb.WriteString(styles.Muted.Render("No open notes."))
		sb.WriteString("\n")
		sb.WriteString(styles.Muted.Render("Select an entry and press enter, or press r to refresh."))
	} else {
		sb.WriteString(m.renderTabBar(leaves))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderLeaf(m.panel.Active(), width-4, height-7))
	}

	style := styles.PanelInactive
	if m.focus == PanePanel {
		style = styles.PanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(sb.String())
}

// renderTabBar renders one tab per leaf, disambiguating duplicate labels
// with their parent directory.
func (m *Model) renderTabBar(leaves []*workspace.Leaf) string {
	labels := tabLabels(leaves)
	parts := make([]string, len(leaves))
	for i, leaf := range leaves {
		parts[i] = styles.RenderTab(labels[i], leaf.Pinned, i == m.panel.ActiveIndex())
	}
	return strings.Join(parts, " ")
}

// tabLabels computes a display label per leaf. Leaves whose base names
// collide get their parent directory prefixed.
func tabLabels(leaves []*workspace.Leaf) []string {
	counts := make(map[string]int)
	for _, l := range leaves {
		if l.File != nil {
			counts[l.File.Name]++
		}
	}

	labels := make([]string, len(leaves))
	for i, l := range leaves {
		if l.File == nil {
			labels[i] = "untitled"
			continue
		}
		label := l.File.Name
		if counts[label] > 1 {
			if dir := path.Base(path.Dir(l.File.Path)); dir != "." && dir != "/" {
				label = dir + "/" + label
			}
		}
		labels[i] = runewidth.Truncate(label, maxTabLabel, "…")
	}
	return labels
}

// renderLeaf renders the active leaf's content window at its scroll offset.
func (m *Model) renderLeaf(leaf *workspace.Leaf, width, height int) string {
	if leaf == nil || leaf.File == nil {
		return styles.Muted.Render("Empty tab.")
	}
	if width < 10 {
		width = 10
	}
	if height < 1 {
		height = 1
	}

	lines := m.renderer.Render(leaf.File, width)

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if leaf.Scroll > maxScroll {
		leaf.Scroll = maxScroll
	}

	end := leaf.Scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	window := strings.Join(lines[leaf.Scroll:end], "\n")

	if maxScroll > 0 {
		pct := leaf.Scroll * 100 / maxScroll
		window += "\n" + styles.Subtle.Render(fmt.Sprintf("%d%%", pct))
	}
	return window
}

// renderFooter renders the key hints line, replaced by the active toast
// when one is showing.
func (m *Model) renderFooter() string {
	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		return style.Render(m.statusMsg)
	}

	var hints []string
	switch {
	case m.entryModal != nil:
		hints = []string{"tab fields", "enter save", "esc cancel"}
	case m.focus == PaneEntries:
		hints = []string{"j/k move", "enter open", "a pin", "e edit", "d unpin", "r refresh", "? palette", "q quit"}
	default:
		hints = []string{"h/l tabs", "j/k scroll", "x close", "y copy path", "r refresh", "? palette", "q quit"}
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.KeyHint.Render(h)
	}
	return strings.Join(parts, " ")
}

// renderEntryModal renders the pin-a-note form with its autocomplete
// dropdown.
func (m *Model) renderEntryModal() string {
	em := m.entryModal

	var sb strings.Builder
	title := "Pin a Note"
	if em.editID != "" {
		title = "Edit Pinned Note"
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n\n")

	sb.WriteString("Path:\n")
	sb.WriteString(inputBox(em.pathInput.View(), em.focus == 0))
	sb.WriteString("\n")

	for i, s := range em.suggestions {
		if i == em.sugCursor {
			sb.WriteString(styles.ListItemSelected.Render("  " + s))
		} else {
			sb.WriteString(styles.Muted.Render("  " + s))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nName:\n")
	sb.WriteString(inputBox(em.nameInput.View(), em.focus == 1))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Muted.Render("enter save · tab switch field · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderActive).
		Padding(1, 2).
		Render(sb.String())
}

func inputBox(view string, focused bool) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(styles.TextMuted).
		Padding(0, 1)
	if focused {
		style = style.BorderForeground(styles.Primary)
	}
	return style.Render(view)
}
