// Package prefs handles pokedex user preferences persistence.
// Preferences are stored in ~/.config/pokedex/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds choices the user makes inside the TUI.
type Prefs struct {
	Theme    string `toml:"theme"`
	PageSize int    `toml:"page_size,omitempty"` // zero defers to config
}

const (
	defaultPrefsPath = "~/.config/pokedex/prefs.toml"
	defaultTheme     = "Kanto"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is saved.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load returns the preferences stored at path, or the default location when
// path is blank. Anything that stops the file from being read or decoded
// falls back to Defaults, so a damaged prefs file costs the user their
// choices and nothing else.
func Load(path string) Prefs {
	file, err := locate(path)
	if err != nil {
		return Defaults()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return Defaults()
	}
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// normalized fills a blank theme and clamps a negative page size to zero.
func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	if p.PageSize < 0 {
		p.PageSize = 0
	}
	return p
}

// Save stores p at path, or the default location when path is blank.
func Save(path string, p Prefs) error {
	file, err := locate(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(file), err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}

// locate turns path into an absolute file name, expanding a leading "~".
func locate(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate prefs: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
