package vault

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// newTestVault creates a vault over a temp dir populated with the given
// relative paths.
func newTestVault(t *testing.T, files map[string]string) *Vault {
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
	v, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes/inbox.md", "notes/inbox.md"},
		{"  notes/inbox.md  ", "notes/inbox.md"},
		{"notes\\inbox.md", "notes/inbox.md"},
		{"./notes/inbox.md", "notes/inbox.md"},
		{"notes//inbox.md", "notes/inbox.md"},
		{"../escape.md", "escape.md"},
		{"/rooted.md", "rooted.md"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"inbox.md":       "# Inbox",
		"notes/daily.md": "today",
	})

	f, err := v.Resolve("notes/daily.md")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if f.Path != "notes/daily.md" || f.Name != "daily.md" {
		t.Errorf("Resolve = %+v", f)
	}

	if _, err := v.Resolve("missing.md"); err == nil {
		t.Error("Resolve(missing.md): want error")
	}
	if _, err := v.Resolve(""); err == nil {
		t.Error("Resolve(empty): want error")
	}
	if _, err := v.Resolve("notes"); err == nil {
		t.Error("Resolve(directory): want error")
	}
}

func TestResolveStaysInVault(t *testing.T) {
	v := newTestVault(t, map[string]string{"inbox.md": "x"})

	// Path cleaning anchors traversal at the root, so this resolves to
	// inbox.md inside the vault rather than escaping it.
	f, err := v.Resolve("../inbox.md")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if f.Path != "inbox.md" {
		t.Errorf("Resolve(../inbox.md).Path = %q", f.Path)
	}
}

func TestReadAndFingerprint(t *testing.T) {
	v := newTestVault(t, map[string]string{"a.md": "hello"})

	f, err := v.Resolve("a.md")
	if err != nil {
		t.Fatal(err)
	}
	data, err := v.Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Read = %q", data)
	}

	fp1 := v.Fingerprint(f)
	if err := os.WriteFile(filepath.Join(v.Root(), "a.md"), []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	if fp2 := v.Fingerprint(f); fp2 == fp1 {
		t.Error("fingerprint unchanged after content edit")
	}
}

func TestReindexSkipsDotDirs(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"a.md":           "x",
		"b.txt":          "x",
		"notes/c.md":     "x",
		".git/hidden.md": "x",
	})

	want := []string{"a.md", "notes/c.md"}
	if got := v.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestSuggest(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"Inbox.md":        "x",
		"notes/daily.md":  "x",
		"notes/ideas.md":  "x",
		"areas/budget.md": "x",
	})

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"empty query yields nothing", "", 5, nil},
		{"case insensitive", "inbox", 5, []string{"Inbox.md"}},
		{"matches anywhere in path", "notes/", 5, []string{"notes/daily.md", "notes/ideas.md"}},
		{"limit caps results", "md", 2, []string{"Inbox.md", "areas/budget.md"}},
		{"no match", "zzz", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Suggest(tt.query, tt.limit); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suggest(%q, %d) = %v, want %v", tt.query, tt.limit, got, tt.want)
			}
		})
	}
}
