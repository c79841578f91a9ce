package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/pinboard/internal/vault"
)

func newTestRenderer(t *testing.T, files map[string]string) (*Renderer, *vault.Vault) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	v, err := vault.New(root)
	if err != nil {
		t.Fatal(err)
	}
	return New(v), v
}

func TestRenderMarkdown(t *testing.T) {
	r, v := newTestRenderer(t, map[string]string{"a.md": "# Title\n\nbody"})
	f, err := v.Resolve("a.md")
	if err != nil {
		t.Fatal(err)
	}

	lines := r.Render(f, 80)
	if len(lines) == 0 {
		t.Fatal("Render returned no lines")
	}
	if !strings.Contains(strings.Join(lines, "\n"), "Title") {
		t.Error("rendered markdown lost the heading text")
	}
}

func TestRenderNilFile(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	if lines := r.Render(nil, 80); lines != nil {
		t.Errorf("Render(nil) = %v, want nil", lines)
	}
}

func TestRenderCachesUnchangedContent(t *testing.T) {
	r, v := newTestRenderer(t, map[string]string{"a.md": "hello"})
	f, err := v.Resolve("a.md")
	if err != nil {
		t.Fatal(err)
	}

	first := r.Render(f, 80)
	second := r.Render(f, 80)
	if len(first) != len(second) {
		t.Fatalf("cached render differs: %d vs %d lines", len(first), len(second))
	}
	if &first[0] != &second[0] {
		t.Error("unchanged content was re-rendered instead of served from cache")
	}
}

func TestRenderDetectsContentChange(t *testing.T) {
	r, v := newTestRenderer(t, map[string]string{"a.md": "before"})
	f, err := v.Resolve("a.md")
	if err != nil {
		t.Fatal(err)
	}

	old := strings.Join(r.Render(f, 80), "\n")
	if err := os.WriteFile(filepath.Join(v.Root(), "a.md"), []byte("# after"), 0644); err != nil {
		t.Fatal(err)
	}

	got := strings.Join(r.Render(f, 80), "\n")
	if got == old {
		t.Error("render did not pick up the content change")
	}
	if !strings.Contains(got, "after") {
		t.Errorf("rendered content = %q, missing new text", got)
	}
}

func TestRenderWidthChangeInvalidates(t *testing.T) {
	r, v := newTestRenderer(t, map[string]string{"a.md": "hello"})
	f, err := v.Resolve("a.md")
	if err != nil {
		t.Fatal(err)
	}

	r.Render(f, 80)
	wide := r.Render(f, 120)
	narrow := r.Render(f, 80)
	if len(wide) == 0 || len(narrow) == 0 {
		t.Error("width change broke rendering")
	}
}

func TestInvalidateDropsCacheEntry(t *testing.T) {
	r, v := newTestRenderer(t, map[string]string{"a.md": "hello"})
	f, err := v.Resolve("a.md")
	if err != nil {
		t.Fatal(err)
	}

	r.Render(f, 80)
	if _, ok := r.cache["a.md"]; !ok {
		t.Fatal("render did not populate the cache")
	}
	r.Invalidate("a.md")
	if _, ok := r.cache["a.md"]; ok {
		t.Error("Invalidate left the cache entry")
	}
}

func TestIsMarkdown(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"a.MD", true},
		{"a.markdown", true},
		{"a.txt", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := isMarkdown(tt.path); got != tt.want {
			t.Errorf("isMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
