package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/desktop"
	"github.com/lsimons/auto/internal/logging"
)

var organizeDryRun bool

var organizeDesktopCmd = &cobra.Command{
	Use:   "organize-desktop",
	Short: "File desktop items into date-based directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("organize-desktop")
		timer := logging.StartTimer("organize-desktop")
		defer timer.Stop()

		o := &desktop.Organizer{
			Desktop: constants.DesktopDir(),
			Out:     os.Stdout,
			DryRun:  organizeDryRun,
		}
		return o.Organize()
	},
}

func init() {
	organizeDesktopCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false,
		"Show what would be organized without making changes")
}
