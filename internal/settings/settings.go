package settings

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NoteEntry is one user-configured pin: a vault path, an optional display
// name, and a stable opaque id.
type NoteEntry struct {
	Path        string `json:"path"`
	DisplayName string `json:"displayName"`
	ID          string `json:"id"`
}

// Label returns the name used for the entry's action and tab. Falls back to
// the path, then to "Untitled".
func (e NoteEntry) Label() string {
	if s := strings.TrimSpace(e.DisplayName); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.Path); s != "" {
		return s
	}
	return "Untitled"
}

// Settings is the persisted root structure: the ordered pin list plus two
// flags. Mutated by the settings surface, saved after every mutation.
type Settings struct {
	NoteEntries  []NoteEntry `json:"noteEntries"`
	TipDismissed bool        `json:"tipDismissed"`
	AutoPinTabs  bool        `json:"autoPinTabs"`
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		NoteEntries: nil,
		AutoPinTabs: true,
	}
}

// NewEntryID generates a unique id for a new entry. Ids are never
// regenerated for an entry and never reused after deletion.
func NewEntryID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// Timestamp alone still keeps ids unique across interactive edits.
		return fmt.Sprintf("note-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("note-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// EntryByID returns the entry with the given id, or false.
func (s *Settings) EntryByID(id string) (NoteEntry, bool) {
	for _, e := range s.NoteEntries {
		if e.ID == id {
			return e, true
		}
	}
	return NoteEntry{}, false
}

// RemoveEntry deletes the entry with the given id. Returns true if an entry
// was removed.
func (s *Settings) RemoveEntry(id string) bool {
	for i, e := range s.NoteEntries {
		if e.ID == id {
			s.NoteEntries = append(s.NoteEntries[:i], s.NoteEntries[i+1:]...)
			return true
		}
	}
	return false
}
