package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/agent"
	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/logging"
	"github.com/lsimons/auto/internal/tui"
	"github.com/lsimons/auto/internal/workspace"
)

var (
	agentSubagents int
	agentCommand   string
	agentNoZed     bool
	agentNoAttach  bool
	agentSession   string
	agentExclMain  bool
	agentVerbose   bool
	agentForce     bool
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage coding agent sessions in tmux with per-pane worktrees",
}

// pickWorkspace resolves the org/repo arguments to a workspace, falling
// back to the interactive picker when no arguments are given.
func pickWorkspace(args []string) (*workspace.Workspace, error) {
	workspaces, err := workspace.Discover(constants.GitRoot())
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return tui.RunWorkspacePicker(workspace.All(workspaces))
	}

	var org, repo string
	switch {
	case len(args) == 2:
		org, repo = args[0], args[1]
	case strings.Contains(args[0], "/"):
		parts := strings.SplitN(args[0], "/", 2)
		org, repo = parts[0], parts[1]
	default:
		return nil, fmt.Errorf("org and repo arguments required (use '<org> <repo>' or '<org>/<repo>')")
	}
	return workspace.Match(org, repo, workspaces)
}

var agentSpawnCmd = &cobra.Command{
	Use:   "spawn [org/repo | org repo]",
	Short: "Start a new agent session for a workspace",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent spawn")

		ws, err := pickWorkspace(args)
		if err != nil {
			return err
		}
		if ws == nil {
			return nil // picker cancelled
		}

		m := agent.NewManager()
		_, err = m.Spawn(agent.SpawnOpts{
			Workspace: *ws,
			Subagents: agentSubagents,
			Command:   agentCommand,
			NoZed:     agentNoZed,
			NoAttach:  agentNoAttach,
		})
		return err
	},
}

var agentAttachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach the terminal to an agent session",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent attach")

		m := agent.NewManager()
		return m.Attach(agentSession)
	},
}

var agentSendCmd = &cobra.Command{
	Use:   "send <pane> <text>...",
	Short: "Send text to a single pane",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent send")

		m := agent.NewManager()
		return m.Send(agentSession, args[0], strings.Join(args[1:], " "))
	},
}

var agentBroadcastCmd = &cobra.Command{
	Use:   "broadcast <text>...",
	Short: "Send text to every pane in a session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent broadcast")

		m := agent.NewManager()
		return m.Broadcast(agentSession, strings.Join(args, " "), agentExclMain)
	},
}

var agentFocusCmd = &cobra.Command{
	Use:   "focus <pane|direction>",
	Short: "Focus a pane by name or move focus left/right/up/down",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent focus")

		m := agent.NewManager()
		return m.Focus(agentSession, args[0])
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agent sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent list")

		m := agent.NewManager()
		return m.List(agentVerbose)
	},
}

var agentCloseCmd = &cobra.Command{
	Use:   "close <pane>",
	Short: "Close a pane, keeping its worktree for reuse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent close")

		m := agent.NewManager()
		return m.Close(agentSession, args[0])
	},
}

var agentKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Kill a session's tmux session and delete its record",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("agent kill")

		m := agent.NewManager()
		return m.Kill(agentSession, agentForce)
	},
}

func init() {
	agentSpawnCmd.Flags().IntVarP(&agentSubagents, "subagents", "n", 1,
		"Number of subagent panes (1-4)")
	agentSpawnCmd.Flags().StringVarP(&agentCommand, "command", "c", constants.DefaultAgentCommand,
		"Agent command to start in every pane")
	agentSpawnCmd.Flags().BoolVar(&agentNoZed, "no-zed", false,
		"Don't open the main worktree in Zed")
	agentSpawnCmd.Flags().BoolVar(&agentNoAttach, "no-attach", false,
		"Don't attach to the tmux session after spawning")

	agentBroadcastCmd.Flags().BoolVar(&agentExclMain, "exclude-main", false,
		"Skip the main pane")
	agentListCmd.Flags().BoolVarP(&agentVerbose, "verbose", "v", false,
		"Show pane details for each session")
	agentKillCmd.Flags().BoolVarP(&agentForce, "force", "f", false,
		"Skip the confirmation prompt")

	for _, c := range []*cobra.Command{
		agentAttachCmd, agentSendCmd, agentBroadcastCmd,
		agentFocusCmd, agentCloseCmd, agentKillCmd,
	} {
		c.Flags().StringVarP(&agentSession, "session", "s", "",
			"Session ID (defaults to the most recent session)")
	}

	agentCmd.AddCommand(agentSpawnCmd)
	agentCmd.AddCommand(agentAttachCmd)
	agentCmd.AddCommand(agentSendCmd)
	agentCmd.AddCommand(agentBroadcastCmd)
	agentCmd.AddCommand(agentFocusCmd)
	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentCloseCmd)
	agentCmd.AddCommand(agentKillCmd)
}
