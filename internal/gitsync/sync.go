// Package gitsync mirrors a GitHub account's repositories into ~/git.
package gitsync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lsimons/auto/internal/gh"
	"github.com/lsimons/auto/internal/git"
	"github.com/lsimons/auto/internal/logging"
)

// repoListLimit caps the gh repo listing.
const repoListLimit = 1000

// Partition splits a repo listing into active and archived names. Forks are
// dropped entirely.
func Partition(repos []gh.Repo) (active, archived []string) {
	for _, r := range repos {
		if r.IsFork {
			continue
		}
		if r.IsArchived {
			archived = append(archived, r.Name)
		} else {
			active = append(active, r.Name)
		}
	}
	return active, archived
}

// Syncer clones missing repositories and updates existing ones.
type Syncer struct {
	GH     gh.Client
	Git    git.Client
	Owner  string
	Root   string // clone target for active repos
	Out    io.Writer
	DryRun bool
}

// Sync mirrors the owner's repositories: active ones under Root, archived
// ones under Root/archive. Per-repo failures are reported and skipped.
func (s *Syncer) Sync() error {
	archiveDir := filepath.Join(s.Root, "archive")

	if s.DryRun {
		fmt.Fprintf(s.Out, "Would create directories: %s, %s\n", s.Root, archiveDir)
	} else {
		if err := os.MkdirAll(archiveDir, 0755); err != nil {
			return fmt.Errorf("failed to create sync directories: %w", err)
		}
	}

	fmt.Fprintln(s.Out, "Fetching repository list...")
	repos, err := s.GH.ListRepos(s.Owner, repoListLimit)
	if err != nil {
		return err
	}
	active, archived := Partition(repos)
	fmt.Fprintf(s.Out, "Found %d active and %d archived repositories.\n", len(active), len(archived))

	for _, name := range active {
		s.syncRepo(name, s.Root)
	}
	for _, name := range archived {
		s.syncRepo(name, archiveDir)
	}
	return nil
}

func (s *Syncer) syncRepo(name, targetDir string) {
	repoPath := filepath.Join(targetDir, name)

	if s.DryRun {
		fmt.Fprintf(s.Out, "Would sync repo: %s to %s\n", name, targetDir)
		return
	}

	if _, err := os.Stat(repoPath); os.IsNotExist(err) {
		fmt.Fprintf(s.Out, "Cloning %s...\n", name)
		url := fmt.Sprintf("https://github.com/%s/%s.git", s.Owner, name)
		if err := s.Git.Clone(targetDir, url); err != nil {
			fmt.Fprintf(s.Out, "Failed to sync %s: %v\n", name, err)
		}
		return
	}

	fmt.Fprintf(s.Out, "Updating %s...\n", name)
	if err := s.Git.FetchAll(repoPath); err != nil {
		fmt.Fprintf(s.Out, "Failed to sync %s: %v\n", name, err)
		return
	}
	if err := s.fastForward(repoPath); err != nil {
		fmt.Fprintf(s.Out, "  %s: %v\n", name, err)
	}
}

// fastForward advances the checked-out branch when it is strictly behind its
// upstream. Three hashes decide: identical means up to date, merge base at
// the local head means behind (fast-forward), anything else is left alone.
func (s *Syncer) fastForward(repoPath string) error {
	local, err := s.Git.RevParse(repoPath, "HEAD")
	if err != nil {
		return fmt.Errorf("cannot resolve HEAD: %w", err)
	}
	remote, err := s.Git.RevParse(repoPath, "@{u}")
	if err != nil {
		// No upstream configured; nothing to advance.
		logging.Debug("no upstream in %s: %v", repoPath, err)
		return nil
	}
	if local == remote {
		return nil
	}

	base, err := s.Git.MergeBase(repoPath, "HEAD", "@{u}")
	if err != nil {
		return fmt.Errorf("cannot compute merge base: %w", err)
	}

	switch base {
	case local:
		if err := s.Git.MergeFastForward(repoPath, "@{u}"); err != nil {
			return fmt.Errorf("fast-forward failed: %w", err)
		}
		fmt.Fprintln(s.Out, "  fast-forwarded to upstream")
	case remote:
		// Local is ahead; leave it for the user to push.
	default:
		fmt.Fprintln(s.Out, "  diverged from upstream, skipping")
	}
	return nil
}
