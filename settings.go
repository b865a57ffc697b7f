package gamesrv

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Settings holds application-level preferences owned by the presentation
// layer but persisted alongside the registry
type Settings struct {
	MinimizeToTray bool `json:"minimize_to_tray"`
	StartMinimized bool `json:"start_minimized"`
}

// DefaultSettings returns the out-of-the-box preferences
func DefaultSettings() Settings {
	return Settings{
		MinimizeToTray: true,
		StartMinimized: false,
	}
}

// LoadSettings reads settings from path. Any failure, including a missing
// or corrupt file, degrades to the defaults; settings are never worth
// refusing to start over.
func LoadSettings(path string) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings()
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings()
	}
	return s
}

// Save writes the settings atomically, creating parent directories as needed
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return &OpError{Op: OpSave, Path: path, Err: err}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return &OpError{Op: OpSave, Path: path, Err: err}
	}

	if err := renameio.WriteFile(path, data, FileMode); err != nil {
		return &OpError{Op: OpSave, Path: path, Err: err}
	}
	return nil
}
