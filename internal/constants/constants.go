// Package constants defines shared constants used throughout the auto toolkit.
package constants

import (
	"os"
	"path/filepath"
	"time"
)

// Command timeouts for external tools.
const (
	TmuxCommandTimeout = 10 * time.Second
	GitCommandTimeout  = 30 * time.Second
	// CloneTimeout covers git clone / git fetch --all against GitHub.
	CloneTimeout = 5 * time.Minute
	// ScriptTimeout covers osascript invocations that drive GUI apps.
	ScriptTimeout = 2 * time.Minute
)

// Session identifiers.
const (
	// SessionIDPrefix prefixes generated agent session IDs.
	SessionIDPrefix = "auto-agent-"
	// SessionTimestampLayout is the UTC timestamp format used in session IDs
	// and worktree branch names.
	SessionTimestampLayout = "20060102-150405"
	// MainPaneName is the worktree/pane name for the main agent.
	MainPaneName = "M"
	// MaxSubagents is the largest supported subagent count per layout.
	MaxSubagents = 4
)

// WorktreesDirSuffix is appended to a repository name to form the sibling
// directory that holds its worktrees.
const WorktreesDirSuffix = "-worktrees"

// Wallpaper generation.
const (
	WallpaperWidth      = 2880
	WallpaperHeight     = 1800
	WallpaperKeepCount  = 5
	WallpaperFilePrefix = "background_"
)

// StateFileName is the daily-run gate file in the user's home directory.
const StateFileName = ".start_the_day.toml"

// LaunchAppsConfigName is the optional launch-apps command list under the
// config directory.
const LaunchAppsConfigName = "launch-apps.yaml"

// DefaultAgentCommand is the command started in each agent pane.
const DefaultAgentCommand = "claude"

// GitHubUser is the account whose repositories git-sync mirrors.
const GitHubUser = "lsimons"

// GDrive sync constraints.
const (
	GDriveHost     = "paddo"
	GDriveVolume   = "/Volumes/LSData"
	GDriveRemote   = "gdrive:"
	GDriveDestName = "Google Drive"
	// HomebrewRclone is preferred because launchd jobs run without the
	// user's PATH.
	HomebrewRclone = "/opt/homebrew/bin/rclone"
)

// HomeDir returns the current user's home directory, falling back to the
// HOME environment variable.
func HomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

// GitRoot returns the workspace discovery root (~/git).
func GitRoot() string {
	return filepath.Join(HomeDir(), "git")
}

// ConfigDir returns the toolkit config directory (~/.config/auto).
func ConfigDir() string {
	return filepath.Join(HomeDir(), ".config", "auto")
}

// SessionsDir returns the agent session store (~/.config/auto/agent/sessions).
func SessionsDir() string {
	return filepath.Join(ConfigDir(), "agent", "sessions")
}

// DataDir returns the toolkit data directory (~/.local/share/lsimons-auto).
func DataDir() string {
	return filepath.Join(HomeDir(), ".local", "share", "lsimons-auto")
}

// BackgroundsDir returns the generated wallpaper directory.
func BackgroundsDir() string {
	return filepath.Join(DataDir(), "backgrounds")
}

// LogPath returns the unified log file path.
func LogPath() string {
	return filepath.Join(DataDir(), "auto.log")
}

// StatePath returns the daily-run gate file path.
func StatePath() string {
	return filepath.Join(HomeDir(), StateFileName)
}

// DesktopDir returns the user's desktop directory.
func DesktopDir() string {
	return filepath.Join(HomeDir(), "Desktop")
}
