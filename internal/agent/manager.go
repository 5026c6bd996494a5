// Package agent manages multi-pane tmux sessions where each pane runs an
// agent command inside its own git worktree.
package agent

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/git"
	"github.com/lsimons/auto/internal/logging"
	"github.com/lsimons/auto/internal/session"
	"github.com/lsimons/auto/internal/tmux"
	"github.com/lsimons/auto/internal/workspace"
)

// Manager coordinates worktrees, tmux panes and session records.
type Manager struct {
	git   git.Client
	tmux  tmux.Client
	store *session.Store
	out   io.Writer
	in    io.Reader
}

// NewManager creates a manager backed by the real git and tmux binaries and
// the default session store.
func NewManager() *Manager {
	return &Manager{
		git:   git.New(),
		tmux:  tmux.New(),
		store: session.NewStore(""),
		out:   os.Stdout,
		in:    os.Stdin,
	}
}

// NewManagerWith creates a manager with explicit dependencies.
func NewManagerWith(g git.Client, t tmux.Client, store *session.Store, out io.Writer, in io.Reader) *Manager {
	return &Manager{git: g, tmux: t, store: store, out: out, in: in}
}

// SpawnOpts configures session creation.
type SpawnOpts struct {
	Workspace workspace.Workspace
	Subagents int
	Command   string
	NoZed     bool
	NoAttach  bool
}

// Spawn creates worktrees, a tmux session with the pane layout, starts the
// agent command in every pane and persists the session record. Unless
// opts.NoAttach is set it finishes by attaching the terminal to the session.
func (m *Manager) Spawn(opts SpawnOpts) (*session.Session, error) {
	if opts.Subagents < 1 || opts.Subagents > constants.MaxSubagents {
		return nil, fmt.Errorf("subagent count must be between 1 and %d, got %d", constants.MaxSubagents, opts.Subagents)
	}
	if opts.Command == "" {
		opts.Command = constants.DefaultAgentCommand
	}

	ws := opts.Workspace
	if !m.git.IsGitRepo(ws.Path) {
		return nil, fmt.Errorf("not a git repository: %s", ws.Path)
	}
	fmt.Fprintf(m.out, "Workspace: %s/%s (%s)\n", ws.Org, ws.Repo, ws.Path)

	now := time.Now().UTC()
	sessionID := constants.SessionIDPrefix + now.Format(constants.SessionTimestampLayout)

	worktreesDir, err := WorktreesDir(ws.Path)
	if err != nil {
		return nil, err
	}

	mainWorktree, err := EnsureWorktree(m.git, ws.Path, constants.MainPaneName, worktreesDir)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(m.out, "Creating layout with %d subagent(s)...\n", opts.Subagents)

	mainPaneID, err := m.tmux.NewSession(tmux.SessionOpts{
		Name:     sessionID,
		StartDir: mainWorktree,
		Detached: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tmux session: %w", err)
	}

	subWorktrees := make([]string, opts.Subagents)
	for i := range subWorktrees {
		name := fmt.Sprintf("%03d", i+1)
		path, err := EnsureWorktree(m.git, ws.Path, name, worktreesDir)
		if err != nil {
			return nil, err
		}
		subWorktrees[i] = path
	}

	subPaneIDs, err := BuildLayout(m.tmux, mainPaneID, subWorktrees)
	if err != nil {
		return nil, err
	}

	panes := make([]session.Pane, 0, opts.Subagents+1)
	panes = append(panes, session.Pane{
		ID:           fmt.Sprintf("%s-%s", constants.MainPaneName, ws.Repo),
		Index:        0,
		Command:      opts.Command,
		IsMain:       true,
		WorktreePath: mainWorktree,
		TmuxPaneID:   mainPaneID,
	})
	for i, paneID := range subPaneIDs {
		panes = append(panes, session.Pane{
			ID:           fmt.Sprintf("%03d-%s", i+1, ws.Repo),
			Index:        i + 1,
			Command:      opts.Command,
			WorktreePath: subWorktrees[i],
			TmuxPaneID:   paneID,
		})
	}

	if !opts.NoZed {
		fmt.Fprintln(m.out, "Launching Zed editor...")
		launchZed(ws.Path)
	}

	fmt.Fprintln(m.out, "Starting agents...")
	for _, pane := range panes {
		if err := m.tmux.SendKeys(pane.TmuxPaneID, pane.Command, "Enter"); err != nil {
			return nil, fmt.Errorf("failed to start agent in pane %s: %w", pane.ID, err)
		}
	}

	sess := &session.Session{
		ID:            sessionID,
		WorkspacePath: ws.Path,
		RepoName:      ws.Repo,
		OrgName:       ws.Org,
		CreatedAt:     now.Format(time.RFC3339),
		TmuxSession:   sessionID,
		Panes:         panes,
	}
	if err := m.store.Save(sess); err != nil {
		return nil, err
	}

	fmt.Fprintf(m.out, "Session created: %s\n", sessionID)
	ids := make([]string, len(panes))
	for i, p := range panes {
		ids[i] = p.ID
	}
	fmt.Fprintf(m.out, "Panes: %s\n", strings.Join(ids, ", "))
	for _, p := range panes {
		if p.WorktreePath != "" {
			fmt.Fprintf(m.out, "  %s: %s\n", p.ID, p.WorktreePath)
		}
	}

	if !opts.NoAttach {
		fmt.Fprintf(m.out, "\nAttaching to tmux session: %s\n", sessionID)
		if err := m.tmux.AttachSession(sessionID); err != nil {
			return sess, fmt.Errorf("failed to attach: %w", err)
		}
	}

	return sess, nil
}

// launchZed opens the editor on the workspace in the background. A missing
// binary is only a warning.
func launchZed(path string) {
	cmd := exec.Command("zed", path)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		logging.Warn("zed not found, skipping editor launch: %v", err)
		fmt.Fprintln(os.Stderr, "Warning: Zed not found, skipping editor launch")
		return
	}
	// Detach: we never wait on the editor process.
	go func() { _ = cmd.Wait() }()
}

// resolve loads the named session, or the most recent one when id is empty.
func (m *Manager) resolve(id string) (*session.Session, error) {
	if id != "" {
		return m.store.Load(id)
	}
	sess, err := m.store.MostRecent()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("no active session found")
	}
	return sess, nil
}

// requireAlive verifies the session's tmux session still exists.
func (m *Manager) requireAlive(sess *session.Session) error {
	if sess.TmuxSession == "" || !m.tmux.HasSession(sess.TmuxSession) {
		return fmt.Errorf("tmux session not found: %s (use 'auto agent kill' to clean up)", sess.TmuxSession)
	}
	return nil
}

// findPane resolves a pane target within a session, with a helpful error
// listing the available panes.
func findPane(sess *session.Session, target string) (*session.Pane, error) {
	pane := sess.FindPane(target)
	if pane == nil {
		ids := make([]string, len(sess.Panes))
		for i, p := range sess.Panes {
			ids[i] = p.ID
		}
		return nil, fmt.Errorf("pane not found: %s (available: %s)", target, strings.Join(ids, ", "))
	}
	if pane.TmuxPaneID == "" {
		return nil, fmt.Errorf("pane %s has no tmux pane ID", pane.ID)
	}
	return pane, nil
}

// Send types text followed by Enter into one pane.
func (m *Manager) Send(sessionID, target, text string) error {
	sess, err := m.resolve(sessionID)
	if err != nil {
		return err
	}
	if err := m.requireAlive(sess); err != nil {
		return err
	}
	pane, err := findPane(sess, target)
	if err != nil {
		return err
	}
	if err := m.tmux.SendKeys(pane.TmuxPaneID, text, "Enter"); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Sent to %s: %s\n", pane.ID, text)
	return nil
}

// Broadcast sends text to every pane, or every non-main pane when
// excludeMain is set.
func (m *Manager) Broadcast(sessionID, text string, excludeMain bool) error {
	sess, err := m.resolve(sessionID)
	if err != nil {
		return err
	}
	if err := m.requireAlive(sess); err != nil {
		return err
	}

	for _, pane := range sess.Panes {
		if excludeMain && pane.IsMain {
			continue
		}
		if pane.TmuxPaneID == "" {
			continue
		}
		if err := m.tmux.SendKeys(pane.TmuxPaneID, text, "Enter"); err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Sent to %s\n", pane.ID)
	}
	fmt.Fprintf(m.out, "Broadcast complete: %s\n", text)
	return nil
}

// directions maps CLI direction names to tmux select-pane flags.
var directions = map[string]string{
	"left":  "L",
	"right": "R",
	"up":    "U",
	"down":  "D",
}

// Focus selects a pane by target, or moves focus in a direction when target
// is one of left/right/up/down.
func (m *Manager) Focus(sessionID, target string) error {
	sess, err := m.resolve(sessionID)
	if err != nil {
		return err
	}
	if err := m.requireAlive(sess); err != nil {
		return err
	}

	if flag, ok := directions[strings.ToLower(target)]; ok {
		if err := m.tmux.SelectPaneDirection(sess.TmuxSession, flag); err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Focused %s\n", strings.ToLower(target))
		return nil
	}

	pane, err := findPane(sess, target)
	if err != nil {
		return err
	}
	if err := m.tmux.SelectPane(pane.TmuxPaneID); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Focused: %s\n", pane.ID)
	return nil
}

// List prints one line per session, or a detail block when verbose.
// Sessions whose tmux session has disappeared are flagged.
func (m *Manager) List(verbose bool) error {
	sessions, err := m.store.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(m.out, "No active sessions")
		return nil
	}

	for _, sess := range sessions {
		status := ""
		if sess.TmuxSession == "" || !m.tmux.HasSession(sess.TmuxSession) {
			status = " (tmux session gone)"
		}

		if !verbose {
			fmt.Fprintf(m.out, "%s: %s/%s (%d panes)%s\n",
				sess.ID, sess.OrgName, sess.RepoName, len(sess.Panes), status)
			continue
		}

		fmt.Fprintf(m.out, "\nSession: %s%s\n", sess.ID, status)
		fmt.Fprintf(m.out, "  Workspace: %s/%s\n", sess.OrgName, sess.RepoName)
		fmt.Fprintf(m.out, "  Path: %s\n", sess.WorkspacePath)
		fmt.Fprintf(m.out, "  Created: %s\n", sess.CreatedAt)
		fmt.Fprintf(m.out, "  tmux session: %s\n", sess.TmuxSession)
		fmt.Fprintf(m.out, "  Panes: %d\n", len(sess.Panes))

		var live map[string]bool
		if status == "" {
			if ids, err := m.tmux.ListPanes(sess.TmuxSession); err == nil {
				live = make(map[string]bool, len(ids))
				for _, id := range ids {
					live[id] = true
				}
			}
		}

		for _, p := range sess.Panes {
			marker := ""
			if p.IsMain {
				marker = " (main)"
			}
			extra := ""
			if p.TmuxPaneID != "" {
				extra += fmt.Sprintf(" [%s]", p.TmuxPaneID)
				if live != nil && !live[p.TmuxPaneID] {
					extra += " (pane gone)"
				}
			}
			if p.WorktreePath != "" {
				extra += fmt.Sprintf(" @ %s", p.WorktreePath)
				if branch, err := m.git.GetCurrentBranch(p.WorktreePath); err == nil && branch != "" {
					extra += fmt.Sprintf(" (%s)", branch)
				}
			}
			fmt.Fprintf(m.out, "    - %s: %s%s%s\n", p.ID, p.Command, marker, extra)
		}
	}
	return nil
}

// Close kills one pane and drops it from the session record. Closing the
// last pane deletes the record.
func (m *Manager) Close(sessionID, target string) error {
	sess, err := m.resolve(sessionID)
	if err != nil {
		return err
	}
	if err := m.requireAlive(sess); err != nil {
		return err
	}
	pane, err := findPane(sess, target)
	if err != nil {
		return err
	}

	if err := m.tmux.KillPane(pane.TmuxPaneID); err != nil {
		return err
	}

	// Worktrees are kept for reuse; only the pane goes away.
	paneID := pane.ID
	sess.RemovePane(paneID)
	if len(sess.Panes) > 0 {
		if err := m.store.Save(sess); err != nil {
			return err
		}
	} else {
		if err := m.store.Delete(sess.ID); err != nil {
			return err
		}
	}

	fmt.Fprintf(m.out, "Closed: %s\n", paneID)
	return nil
}

// Kill terminates a session's tmux session and deletes its record. Unless
// force is set it asks for confirmation first.
func (m *Manager) Kill(sessionID string, force bool) error {
	sess, err := m.resolve(sessionID)
	if err != nil {
		return err
	}

	if !force {
		fmt.Fprintf(m.out, "Kill session %s? [y/N] ", sess.ID)
		reader := bufio.NewReader(m.in)
		line, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			fmt.Fprintln(m.out, "Cancelled")
			return nil
		}
	}

	if sess.TmuxSession != "" && m.tmux.HasSession(sess.TmuxSession) {
		if err := m.tmux.KillSession(sess.TmuxSession); err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Killed tmux session: %s\n", sess.TmuxSession)
	} else {
		fmt.Fprintln(m.out, "tmux session not found (may already be closed)")
	}

	// Worktrees survive the session so their branches can be picked up
	// again; point the user at them.
	if wts, err := m.git.WorktreeList(sess.WorkspacePath); err == nil {
		for _, wt := range wts {
			if wt.Path == sess.WorkspacePath {
				continue
			}
			fmt.Fprintf(m.out, "Worktree kept: %s\n", wt.Path)
		}
	}

	if err := m.store.Delete(sess.ID); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Killed session: %s\n", sess.ID)
	return nil
}

// Attach connects the terminal to a session's tmux session. It blocks until
// the client detaches.
func (m *Manager) Attach(sessionID string) error {
	sess, err := m.resolve(sessionID)
	if err != nil {
		return err
	}
	if err := m.requireAlive(sess); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Attaching to: %s\n", sess.TmuxSession)
	return m.tmux.AttachSession(sess.TmuxSession)
}
