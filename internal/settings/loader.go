package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	settingsDir  = ".config/pinboard"
	settingsFile = "settings.json"
)

// rawSettings is the JSON-unmarshaling intermediary. Pointer fields let the
// merge distinguish "absent" from "false", so older files missing new flags
// pick up the defaults.
type rawSettings struct {
	NoteEntries  []NoteEntry `json:"noteEntries"`
	TipDismissed *bool       `json:"tipDismissed"`
	AutoPinTabs  *bool       `json:"autoPinTabs"`
}

// Load loads settings from the default location.
func Load() (*Settings, error) {
	return LoadFrom("")
}

// LoadFrom loads settings from a specific path. If path is empty, uses
// ~/.config/pinboard/settings.json.
//
// Loading fails soft: on any read or parse error the returned settings are
// the defaults and the error describes what went wrong so the caller can
// surface a notification. The error is never fatal.
func LoadFrom(path string) (*Settings, error) {
	s := Default()

	if path == "" {
		path = SettingsPath()
		if path == "" {
			return s, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil // no settings file yet
		}
		return s, fmt.Errorf("read settings: %w", err)
	}

	var raw rawSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}

	mergeSettings(s, &raw)
	return s, nil
}

// mergeSettings merges raw values over the defaults. Shallow: a key present
// in the file wins, a missing key keeps the default.
func mergeSettings(s *Settings, raw *rawSettings) {
	if raw.NoteEntries != nil {
		s.NoteEntries = raw.NoteEntries
	}
	if raw.TipDismissed != nil {
		s.TipDismissed = *raw.TipDismissed
	}
	if raw.AutoPinTabs != nil {
		s.AutoPinTabs = *raw.AutoPinTabs
	}
}

// ExpandPath expands ~ to the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// SettingsPath returns the default settings file path.
func SettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, settingsDir, settingsFile)
}
