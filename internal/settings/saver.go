package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the settings to the default location.
func Save(s *Settings) error {
	return SaveTo(SettingsPath(), s)
}

// SaveTo writes the settings to a specific path. The write is best-effort:
// a failure leaves the in-memory settings untouched and is reported to the
// caller for a non-fatal notification.
func SaveTo(path string, s *Settings) error {
	if path == "" {
		return fmt.Errorf("save settings: no settings path")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
