// Package appconfig loads the user preference file (spec §6.7) that
// supplies defaults for flags the caller did not set explicitly on the
// command line.
package appconfig

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Preferences mirrors the subset of command-line flags a user can pin
// a default for in ~/.rtalgsrc.toml.
type Preferences struct {
	Width   int  `toml:"width"`
	Verbose bool `toml:"verbose"`
}

// Path returns the default preference file location, ~/.rtalgsrc.toml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rtalgsrc.toml"), nil
}

// Load reads the preference file at path. A missing file is not an
// error — it returns the zero-value Preferences, letting callers fall
// back to built-in defaults (spec §6.7: the file is optional).
func Load(path string) (Preferences, error) {
	var prefs Preferences
	_, err := toml.DecodeFile(path, &prefs)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return Preferences{}, nil
	}
	return prefs, err
}
