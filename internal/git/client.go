// Package git provides an interface for git operations.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/lsimons/auto/internal/constants"
)

// bufferPool reuses bytes.Buffer instances to reduce allocations in run/runOutput.
var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// Client defines the interface for git operations.
type Client interface {
	// Repository
	IsGitRepo(dir string) bool
	GetCurrentBranch(dir string) (string, error)
	RevParse(dir, ref string) (string, error)
	MergeBase(dir, a, b string) (string, error)

	// Worktree
	WorktreeAdd(projectDir, worktreeDir, branch string, createBranch bool) error
	WorktreeRemove(projectDir, worktreeDir string, force bool) error
	WorktreeList(projectDir string) ([]Worktree, error)

	// Remote
	Clone(parentDir, url string) error
	FetchAll(dir string) error
	MergeFastForward(dir, ref string) error
}

// Worktree represents a git worktree.
type Worktree struct {
	Path   string
	Branch string
	Head   string
}

// gitClient implements the Client interface.
type gitClient struct {
	timeout      time.Duration
	cloneTimeout time.Duration
}

// Compile-time check that gitClient implements Client interface.
var _ Client = (*gitClient)(nil)

// New creates a new git client.
func New() Client {
	return &gitClient{
		timeout:      constants.GitCommandTimeout,
		cloneTimeout: constants.CloneTimeout,
	}
}

func (c *gitClient) cmd(ctx context.Context, dir string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	return cmd
}

func (c *gitClient) runTimeout(timeout time.Duration, dir string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := c.cmd(ctx, dir, args...)

	// Reuse buffer from pool to reduce allocations
	stderr := bufferPool.Get().(*bytes.Buffer)
	stderr.Reset()
	defer bufferPool.Put(stderr)

	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, stderr.String())
	}
	return nil
}

func (c *gitClient) run(dir string, args ...string) error {
	return c.runTimeout(c.timeout, dir, args...)
}

func (c *gitClient) runOutput(dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := c.cmd(ctx, dir, args...)

	stdout := bufferPool.Get().(*bytes.Buffer)
	stderr := bufferPool.Get().(*bytes.Buffer)
	stdout.Reset()
	stderr.Reset()
	defer bufferPool.Put(stdout)
	defer bufferPool.Put(stderr)

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Repository

func (c *gitClient) IsGitRepo(dir string) bool {
	_, err := c.runOutput(dir, "rev-parse", "--git-dir")
	return err == nil
}

func (c *gitClient) GetCurrentBranch(dir string) (string, error) {
	return c.runOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// RevParse resolves a ref to a commit hash.
func (c *gitClient) RevParse(dir, ref string) (string, error) {
	return c.runOutput(dir, "rev-parse", ref)
}

// MergeBase returns the best common ancestor of two refs.
func (c *gitClient) MergeBase(dir, a, b string) (string, error) {
	return c.runOutput(dir, "merge-base", a, b)
}

// Worktree

func (c *gitClient) WorktreeAdd(projectDir, worktreeDir, branch string, createBranch bool) error {
	args := []string{"worktree", "add"}
	if createBranch {
		args = append(args, "-b", branch)
	}
	args = append(args, worktreeDir)
	if !createBranch {
		args = append(args, branch)
	}
	return c.run(projectDir, args...)
}

func (c *gitClient) WorktreeRemove(projectDir, worktreeDir string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, worktreeDir)
	return c.run(projectDir, args...)
}

func (c *gitClient) WorktreeList(projectDir string) ([]Worktree, error) {
	output, err := c.runOutput(projectDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}

	return ParseWorktreeList(output), nil
}

// ParseWorktreeList parses `git worktree list --porcelain` output.
func ParseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current Worktree

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			if current.Path != "" {
				worktrees = append(worktrees, current)
				current = Worktree{}
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			branch := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(branch, "refs/heads/")
		}
	}

	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees
}

// Remote

func (c *gitClient) Clone(parentDir, url string) error {
	return c.runTimeout(c.cloneTimeout, parentDir, "clone", url)
}

func (c *gitClient) FetchAll(dir string) error {
	return c.runTimeout(c.cloneTimeout, dir, "fetch", "--all")
}

// MergeFastForward fast-forwards the current branch to ref. It refuses to
// create a merge commit.
func (c *gitClient) MergeFastForward(dir, ref string) error {
	return c.run(dir, "merge", "--ff-only", ref)
}
