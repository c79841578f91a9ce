package settings

import (
	"strings"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		entry NoteEntry
		want  string
	}{
		{"display name wins", NoteEntry{Path: "notes/a.md", DisplayName: "Inbox"}, "Inbox"},
		{"falls back to path", NoteEntry{Path: "notes/a.md"}, "notes/a.md"},
		{"empty entry", NoteEntry{}, "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewEntryID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewEntryID()
		if !strings.HasPrefix(id, "note-") {
			t.Fatalf("NewEntryID() = %q, want note- prefix", id)
		}
		if seen[id] {
			t.Fatalf("NewEntryID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestEntryByID(t *testing.T) {
	s := &Settings{NoteEntries: []NoteEntry{
		{ID: "note-1", Path: "a.md"},
		{ID: "note-2", Path: "b.md"},
	}}

	e, ok := s.EntryByID("note-2")
	if !ok || e.Path != "b.md" {
		t.Errorf("EntryByID(note-2) = %+v, %v", e, ok)
	}
	if _, ok := s.EntryByID("note-9"); ok {
		t.Error("EntryByID(note-9) found a missing entry")
	}
}

func TestRemoveEntry(t *testing.T) {
	s := &Settings{NoteEntries: []NoteEntry{
		{ID: "note-1"},
		{ID: "note-2"},
		{ID: "note-3"},
	}}

	if !s.RemoveEntry("note-2") {
		t.Fatal("RemoveEntry(note-2) = false")
	}
	if len(s.NoteEntries) != 2 {
		t.Fatalf("got %d entries after remove, want 2", len(s.NoteEntries))
	}
	if s.NoteEntries[0].ID != "note-1" || s.NoteEntries[1].ID != "note-3" {
		t.Errorf("remaining entries out of order: %+v", s.NoteEntries)
	}
	if s.RemoveEntry("note-2") {
		t.Error("RemoveEntry(note-2) succeeded twice")
	}
}

func TestDefault(t *testing.T) {
	s := Default()
	if !s.AutoPinTabs {
		t.Error("Default().AutoPinTabs = false, want true")
	}
	if s.TipDismissed {
		t.Error("Default().TipDismissed = true, want false")
	}
	if len(s.NoteEntries) != 0 {
		t.Errorf("Default() has %d entries, want 0", len(s.NoteEntries))
	}
}
