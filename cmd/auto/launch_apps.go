package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/apps"
	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/logging"
)

var launchAppsList bool

var launchAppsCmd = &cobra.Command{
	Use:   "launch-apps",
	Short: "Launch the daily set of applications in the background",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("launch-apps")

		configPath := filepath.Join(constants.ConfigDir(), constants.LaunchAppsConfigName)
		commands, err := apps.LoadCommands(configPath)
		if err != nil {
			return err
		}

		if launchAppsList {
			apps.List(commands, os.Stdout)
			return nil
		}

		apps.LaunchAll(commands, os.Stdout)
		return nil
	},
}

func init() {
	launchAppsCmd.Flags().BoolVar(&launchAppsList, "list", false,
		"List all configured commands without launching them")
}
