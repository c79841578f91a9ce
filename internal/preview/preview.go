// Package preview renders leaf content for display: markdown through
// glamour, other text through chroma syntax highlighting.
package preview

import (
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/pinboard/internal/vault"
)

// Renderer renders note files to styled terminal lines, caching the last
// render per path so scrolling and tab switches don't re-render unchanged
// content.
type Renderer struct {
	vault *vault.Vault
	cache map[string]cachedRender
}

type cachedRender struct {
	width       int
	fingerprint uint64
	lines       []string
}

// New creates a renderer over the vault.
func New(v *vault.Vault) *Renderer {
	return &Renderer{
		vault: v,
		cache: make(map[string]cachedRender),
	}
}

// Render returns the styled lines for a file at the given width. Render
// errors degrade to the raw content rather than failing the leaf.
func (r *Renderer) Render(f *vault.File, width int) []string {
	if f == nil {
		return nil
	}
	if width < 20 {
		width = 20
	}

	fp := r.vault.Fingerprint(f)
	if c, ok := r.cache[f.Path]; ok && c.width == width && c.fingerprint == fp {
		return c.lines
	}

	data, err := r.vault.Read(f)
	if err != nil {
		return []string{"(unable to read " + f.Path + ")"}
	}

	var rendered string
	if isMarkdown(f.Path) {
		rendered = renderMarkdown(string(data), width)
	} else {
		rendered = highlight(string(data), f.Path)
	}
	if rendered == "" {
		rendered = string(data)
	}

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	// Glamour wraps markdown itself; highlighted and raw lines can run
	// past the viewport and carry SGR sequences, so cut them ANSI-aware.
	if !isMarkdown(f.Path) {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, width, "…")
		}
	}
	r.cache[f.Path] = cachedRender{width: width, fingerprint: fp, lines: lines}
	return lines
}

// Invalidate drops the cached render for a path. Called when the watcher
// reports a change so the next render picks up the edit.
func (r *Renderer) Invalidate(p string) {
	delete(r.cache, vault.Normalize(p))
}

func isMarkdown(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func renderMarkdown(content string, width int) string {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return ""
	}
	out, err := tr.Render(content)
	if err != nil {
		return ""
	}
	return out
}

func highlight(content, p string) string {
	lexer := "plaintext"
	if l := lexers.Match(path.Base(p)); l != nil {
		lexer = l.Config().Name
	}
	var b strings.Builder
	if err := quick.Highlight(&b, content, lexer, "terminal256", "monokai"); err != nil {
		return ""
	}
	return b.String()
}
