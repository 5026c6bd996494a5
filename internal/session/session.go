// Package session persists agent sessions as JSON files.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/fileutil"
)

// ErrNotFound indicates that no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Pane is a single agent pane in a session.
type Pane struct {
	ID           string `json:"id"`         // e.g. "M-lsimons-auto" or "001-lsimons-auto"
	Index        int    `json:"pane_index"` // 0 for main, 1+ for subagents
	Command      string `json:"command"`
	IsMain       bool   `json:"is_main"`
	WorktreePath string `json:"worktree_path,omitempty"`
	TmuxPaneID   string `json:"tmux_pane_id,omitempty"` // e.g. "%0"
}

// Session describes one multi-pane agent layout.
type Session struct {
	ID            string `json:"session_id"` // e.g. "auto-agent-20260826-070000"
	WorkspacePath string `json:"workspace_path"`
	RepoName      string `json:"repo_name"`
	OrgName       string `json:"org_name"`
	CreatedAt     string `json:"created_at"` // RFC3339
	TmuxSession   string `json:"tmux_session_name"`
	Panes         []Pane `json:"panes"`
}

// MainPane returns the session's main pane, or nil if none is flagged.
func (s *Session) MainPane() *Pane {
	for i := range s.Panes {
		if s.Panes[i].IsMain {
			return &s.Panes[i]
		}
	}
	return nil
}

// FindPane resolves a target to a pane. Targets are matched in order:
// the literal "main", an all-digit pane index, then a case-insensitive
// substring of the pane ID.
func (s *Session) FindPane(target string) *Pane {
	targetLower := strings.ToLower(target)

	if targetLower == "main" {
		return s.MainPane()
	}

	if isDigits(target) {
		var idx int
		fmt.Sscanf(target, "%d", &idx)
		if idx >= 0 && idx < len(s.Panes) {
			return &s.Panes[idx]
		}
	}

	for i := range s.Panes {
		if strings.Contains(strings.ToLower(s.Panes[i].ID), targetLower) {
			return &s.Panes[i]
		}
	}

	return nil
}

// RemovePane drops the pane with the given ID. Returns true if a pane was
// removed.
func (s *Session) RemovePane(paneID string) bool {
	for i := range s.Panes {
		if s.Panes[i].ID == paneID {
			s.Panes = append(s.Panes[:i], s.Panes[i+1:]...)
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Store reads and writes session files in a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir uses the default
// sessions directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = constants.SessionsDir()
	}
	return &Store{dir: dir}
}

func (st *Store) path(id string) string {
	return filepath.Join(st.dir, id+".json")
}

// Save writes the session to disk, creating the store directory as needed.
func (st *Store) Save(s *Session) error {
	if err := os.MkdirAll(st.dir, 0755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return fileutil.WriteFileAtomic(st.path(s.ID), data, 0644)
}

// Load reads a session by ID.
func (st *Store) Load(id string) (*Session, error) {
	data, err := os.ReadFile(st.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", id, err)
	}
	return &s, nil
}

// Delete removes a session file. Deleting a missing session is not an error.
func (st *Store) Delete(id string) error {
	err := os.Remove(st.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// List returns all sessions, newest first. Unreadable files are skipped.
func (st *Store) List() ([]*Session, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	// Session IDs embed a UTC timestamp, so reverse name order is
	// newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var sessions []*Session
	for _, name := range names {
		s, err := st.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// MostRecent returns the newest session, or nil if none exist.
func (st *Store) MostRecent() (*Session, error) {
	sessions, err := st.List()
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}
