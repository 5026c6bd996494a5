package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/gh"
	"github.com/lsimons/auto/internal/git"
	"github.com/lsimons/auto/internal/gitsync"
	"github.com/lsimons/auto/internal/logging"
)

var gitSyncDryRun bool

var gitSyncCmd = &cobra.Command{
	Use:   "git-sync",
	Short: "Clone and fast-forward all personal GitHub repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("git-sync")
		timer := logging.StartTimer("git-sync")
		defer timer.Stop()

		s := &gitsync.Syncer{
			GH:     gh.New(),
			Git:    git.New(),
			Owner:  constants.GitHubUser,
			Root:   filepath.Join(constants.GitRoot(), constants.GitHubUser),
			Out:    os.Stdout,
			DryRun: gitSyncDryRun,
		}
		return s.Sync()
	},
}

func init() {
	gitSyncCmd.Flags().BoolVar(&gitSyncDryRun, "dry-run", false,
		"Show what would be synced without cloning or merging")
}
