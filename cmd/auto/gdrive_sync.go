package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/gdrive"
	"github.com/lsimons/auto/internal/logging"
)

var gdriveSyncCmd = &cobra.Command{
	Use:   "gdrive-sync",
	Short: "Mirror Google Drive to the external data volume via rclone",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("gdrive-sync")
		timer := logging.StartTimer("gdrive-sync")
		defer timer.Stop()

		return gdrive.NewSyncer(os.Stdout).Sync()
	},
}
