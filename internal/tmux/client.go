// Package tmux provides an interface for interacting with tmux.
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/lsimons/auto/internal/constants"
)

// ErrNotInstalled indicates that the tmux binary is not on PATH.
var ErrNotInstalled = errors.New("tmux not found. Install with: brew install tmux")

// bufferPool reuses bytes.Buffer instances to reduce allocations in RunWithOutput.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Client defines the interface for tmux operations.
type Client interface {
	// Session management
	HasSession(name string) bool
	NewSession(opts SessionOpts) (string, error)
	AttachSession(name string) error
	KillSession(name string) error

	// Pane operations
	SplitPane(opts SplitOpts) (string, error)
	SelectPane(target string) error
	SelectPaneDirection(target, direction string) error
	KillPane(target string) error
	ListPanes(session string) ([]string, error)
	SendKeys(target string, keys ...string) error

	// Utility
	Run(args ...string) error
	RunWithOutput(args ...string) (string, error)
}

// SessionOpts contains options for creating a new session.
type SessionOpts struct {
	Name     string
	StartDir string
	Detached bool
}

// SplitOpts contains options for split-window.
type SplitOpts struct {
	Target     string // Target pane (e.g. "%0") or session
	Horizontal bool   // -h for side-by-side, default is stacked (-v)
	StartDir   string // -c flag: working directory
}

// tmuxClient implements the Client interface against the default tmux server.
type tmuxClient struct{}

// New creates a new tmux client.
func New() Client {
	return &tmuxClient{}
}

func (c *tmuxClient) cmdContext(ctx context.Context, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, "tmux", args...)
}

func (c *tmuxClient) Run(args ...string) error {
	_, err := c.RunWithOutput(args...)
	return err
}

func (c *tmuxClient) RunWithOutput(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.TmuxCommandTimeout)
	defer cancel()
	cmd := c.cmdContext(ctx, args...)

	// Reuse buffers from pool to reduce allocations
	stdout := bufferPool.Get().(*bytes.Buffer)
	stderr := bufferPool.Get().(*bytes.Buffer)
	stdout.Reset()
	stderr.Reset()
	defer bufferPool.Put(stdout)
	defer bufferPool.Put(stderr)

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrNotInstalled
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("tmux command timeout: %w", err)
		}
		return "", fmt.Errorf("%w: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Session management

func (c *tmuxClient) HasSession(name string) bool {
	err := c.Run("has-session", "-t", name)
	return err == nil
}

// NewSession creates a session and returns the pane ID of its first pane.
func (c *tmuxClient) NewSession(opts SessionOpts) (string, error) {
	args := []string{"new-session", "-s", opts.Name}

	if opts.Detached {
		args = append(args, "-d")
	}
	if opts.StartDir != "" {
		args = append(args, "-c", opts.StartDir)
	}
	args = append(args, "-P", "-F", "#{pane_id}")

	return c.RunWithOutput(args...)
}

// AttachSession attaches the current terminal to a session. It blocks until
// the client detaches.
func (c *tmuxClient) AttachSession(name string) error {
	cmd := exec.Command("tmux", "attach-session", "-t", name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrNotInstalled
		}
		return err
	}
	return nil
}

func (c *tmuxClient) KillSession(name string) error {
	return c.Run("kill-session", "-t", name)
}

// Pane operations

// SplitPane splits the target pane and returns the new pane's ID.
func (c *tmuxClient) SplitPane(opts SplitOpts) (string, error) {
	args := []string{"split-window", "-P", "-F", "#{pane_id}"}

	if opts.Target != "" {
		args = append(args, "-t", opts.Target)
	}
	if opts.Horizontal {
		args = append(args, "-h")
	} else {
		args = append(args, "-v")
	}
	if opts.StartDir != "" {
		args = append(args, "-c", opts.StartDir)
	}

	return c.RunWithOutput(args...)
}

func (c *tmuxClient) SelectPane(target string) error {
	return c.Run("select-pane", "-t", target)
}

// SelectPaneDirection focuses the neighboring pane in the given direction
// (one of "U", "D", "L", "R").
func (c *tmuxClient) SelectPaneDirection(target, direction string) error {
	return c.Run("select-pane", "-t", target, "-"+direction)
}

func (c *tmuxClient) KillPane(target string) error {
	return c.Run("kill-pane", "-t", target)
}

func (c *tmuxClient) ListPanes(session string) ([]string, error) {
	output, err := c.RunWithOutput("list-panes", "-t", session, "-F", "#{pane_id}")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

func (c *tmuxClient) SendKeys(target string, keys ...string) error {
	args := []string{"send-keys", "-t", target}
	args = append(args, keys...)
	return c.Run(args...)
}
