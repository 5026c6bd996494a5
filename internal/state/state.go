// Package state persists the daily-run marker for start-the-day.
package state

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lsimons/auto/internal/fileutil"
	"github.com/lsimons/auto/internal/logging"
)

// State is the on-disk execution state.
type State struct {
	LastRunDate string `toml:"last_run_date"`
}

// Load reads the state file. A missing or unreadable file yields an empty
// state so a fresh machine just runs.
func Load(path string) State {
	var st State
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("could not read state file %s: %v", path, err)
		}
		return st
	}
	if err := toml.Unmarshal(data, &st); err != nil {
		logging.Warn("could not parse state file %s: %v", path, err)
		return State{}
	}
	return st
}

// Save writes the state file with a generated-on header.
func Save(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# start-the-day execution state")
	fmt.Fprintf(&buf, "# Generated on %s\n\n", time.Now().Format(time.RFC3339))
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// today returns the current local date in the format stored on disk.
func today() string {
	return time.Now().Format("2006-01-02")
}

// AlreadyRanToday reports whether the routine completed earlier today.
func AlreadyRanToday(path string) bool {
	return Load(path).LastRunDate == today()
}

// MarkRanToday records a successful run for the current date.
func MarkRanToday(path string) error {
	st := Load(path)
	st.LastRunDate = today()
	return Save(path, st)
}
