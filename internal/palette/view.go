package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/pinboard/internal/action"
	"github.com/marcus/pinboard/internal/styles"
)

// keyColumnWidth is the fixed width for the key column so entries align.
const keyColumnWidth = 12

var (
	paletteBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Primary).
			Background(styles.BgSecondary).
			Padding(1, 2)

	categoryHeader = lipgloss.NewStyle().
			Foreground(styles.Secondary).
			Bold(true).
			PaddingLeft(1).
			MarginTop(1)

	entryName = lipgloss.NewStyle().
			Foreground(styles.TextPrimary).
			Width(28)

	entryDesc = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
)

// View renders the command palette.
func (m Model) View() string {
	var b strings.Builder

	width := min(72, m.width-4)
	if width < 40 {
		width = 40
	}
	contentWidth := width - 4

	prompt := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render(">")
	escChip := styles.KeyHint.Render("esc")
	inputWidth := contentWidth - lipgloss.Width(prompt) - lipgloss.Width(escChip) - 3
	paddedInput := lipgloss.NewStyle().Width(inputWidth).Render(m.textInput.View())
	b.WriteString(fmt.Sprintf("%s %s %s", prompt, paddedInput, escChip))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", contentWidth))
	b.WriteString("\n")

	visibleEnd := m.offset + maxVisible
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}

	if m.offset > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↑ %d more above", m.offset)))
		b.WriteString("\n")
	}

	var lastCategory action.Category
	for i := m.offset; i < visibleEnd; i++ {
		a := m.filtered[i]
		if a.Category != lastCategory {
			b.WriteString(categoryHeader.Render(strings.ToUpper(string(a.Category))))
			b.WriteString("\n")
			lastCategory = a.Category
		}
		b.WriteString(m.renderEntry(a, i == m.cursor, contentWidth))
		b.WriteString("\n")
	}

	if visibleEnd < len(m.filtered) {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↓ %d more below", len(m.filtered)-visibleEnd)))
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("No matching commands"))
		b.WriteString("\n")
	}

	content := strings.TrimRight(b.String(), "\n")
	return paletteBox.Width(width).Render(content)
}

func (m Model) renderEntry(a action.Action, selected bool, maxWidth int) string {
	keyStr := ""
	if a.Key != "" {
		keyStr = styles.KeyHint.Render(a.Key)
	}
	if w := lipgloss.Width(keyStr); w < keyColumnWidth {
		keyStr += strings.Repeat(" ", keyColumnWidth-w)
	}

	name := entryName.Render(a.Name)

	descWidth := maxWidth - keyColumnWidth - 28 - 4
	desc := a.Description
	if descWidth > 3 && len(desc) > descWidth {
		desc = desc[:descWidth-3] + "..."
	}

	line := fmt.Sprintf("  %s %s %s", keyStr, name, entryDesc.Render(desc))
	padded := lipgloss.NewStyle().Width(maxWidth).Render(line)
	if selected {
		return styles.ListItemSelected.Width(maxWidth).Render(padded)
	}
	return styles.ListItemNormal.Render(padded)
}
