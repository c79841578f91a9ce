package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "settings.json")
	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if !s.AutoPinTabs {
		t.Error("missing file should yield defaults, AutoPinTabs = false")
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := writeSettingsFile(t, "{not json")
	s, err := LoadFrom(path)
	if err == nil {
		t.Fatal("LoadFrom invalid JSON: want error")
	}
	if s == nil || !s.AutoPinTabs {
		t.Error("invalid JSON should still yield defaults")
	}
}

func TestLoadFromMergesOverDefaults(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantAutoPin bool
		wantTip     bool
		wantEntries int
	}{
		{
			name:        "empty object keeps all defaults",
			content:     `{}`,
			wantAutoPin: true,
		},
		{
			name:        "explicit false overrides default true",
			content:     `{"autoPinTabs": false}`,
			wantAutoPin: false,
		},
		{
			name:        "entries and flags together",
			content:     `{"noteEntries": [{"path": "a.md", "id": "note-1"}], "tipDismissed": true}`,
			wantAutoPin: true,
			wantTip:     true,
			wantEntries: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettingsFile(t, tt.content)
			s, err := LoadFrom(path)
			if err != nil {
				t.Fatalf("LoadFrom: %v", err)
			}
			if s.AutoPinTabs != tt.wantAutoPin {
				t.Errorf("AutoPinTabs = %v, want %v", s.AutoPinTabs, tt.wantAutoPin)
			}
			if s.TipDismissed != tt.wantTip {
				t.Errorf("TipDismissed = %v, want %v", s.TipDismissed, tt.wantTip)
			}
			if len(s.NoteEntries) != tt.wantEntries {
				t.Errorf("got %d entries, want %d", len(s.NoteEntries), tt.wantEntries)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	orig := Default()
	orig.AutoPinTabs = false
	orig.TipDismissed = true
	orig.NoteEntries = []NoteEntry{
		{ID: "note-1", Path: "notes/inbox.md", DisplayName: "Inbox"},
		{ID: "note-2", Path: "todo.md"},
	}

	if err := SaveTo(path, orig); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.AutoPinTabs != orig.AutoPinTabs || got.TipDismissed != orig.TipDismissed {
		t.Errorf("flags: got %v/%v, want %v/%v",
			got.AutoPinTabs, got.TipDismissed, orig.AutoPinTabs, orig.TipDismissed)
	}
	if len(got.NoteEntries) != 2 {
		t.Fatalf("got %d entries, want 2", len(got.NoteEntries))
	}
	if got.NoteEntries[0] != orig.NoteEntries[0] {
		t.Errorf("entry 0 = %+v, want %+v", got.NoteEntries[0], orig.NoteEntries[0])
	}
}

func TestSaveToNoPath(t *testing.T) {
	if err := SaveTo("", Default()); err == nil {
		t.Error("SaveTo with empty path: want error")
	}
}
