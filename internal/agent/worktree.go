package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/git"
	"github.com/lsimons/auto/internal/logging"
)

// WorktreesDir returns the sibling directory that holds a workspace's
// worktrees, creating it if needed.
func WorktreesDir(workspacePath string) (string, error) {
	dir := filepath.Join(filepath.Dir(workspacePath), filepath.Base(workspacePath)+constants.WorktreesDirSuffix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create worktrees directory: %w", err)
	}
	return dir, nil
}

// EnsureWorktree creates the named worktree under worktreesDir if it does not
// already exist. An existing directory with a .git marker is reused as-is;
// one without is treated as debris and recreated. New worktrees get a branch
// named <name>-<UTC timestamp>.
func EnsureWorktree(gitClient git.Client, workspacePath, name, worktreesDir string) (string, error) {
	worktreePath := filepath.Join(worktreesDir, name)

	if _, err := os.Stat(worktreePath); err == nil {
		if _, err := os.Stat(filepath.Join(worktreePath, ".git")); err == nil {
			logging.Debug("worktree %s already exists, reusing", worktreePath)
			return worktreePath, nil
		}
		logging.Warn("removing stale directory without .git marker: %s", worktreePath)
		// Clear any leftover registration first so the re-add succeeds.
		if err := gitClient.WorktreeRemove(workspacePath, worktreePath, true); err != nil {
			logging.Debug("worktree remove %s: %v", worktreePath, err)
		}
		if err := os.RemoveAll(worktreePath); err != nil {
			return "", fmt.Errorf("failed to remove stale worktree directory: %w", err)
		}
	}

	branch := fmt.Sprintf("%s-%s", name, time.Now().UTC().Format(constants.SessionTimestampLayout))
	if err := gitClient.WorktreeAdd(workspacePath, worktreePath, branch, true); err != nil {
		return "", fmt.Errorf("failed to create worktree %q: %w", name, err)
	}

	return worktreePath, nil
}
