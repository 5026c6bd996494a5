package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/logging"
	"github.com/lsimons/auto/internal/osa"
	"github.com/lsimons/auto/internal/wallpaper"
)

var backgroundDryRun bool

var updateBackgroundCmd = &cobra.Command{
	Use:   "update-desktop-background",
	Short: "Generate a timestamped wallpaper and set it on every desktop",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("update-desktop-background")
		timer := logging.StartTimer("update-desktop-background")
		defer timer.Stop()

		u := &wallpaper.Updater{
			Dir:    constants.BackgroundsDir(),
			Osa:    osa.New(),
			Out:    os.Stdout,
			DryRun: backgroundDryRun,
		}
		return u.Update()
	},
}

func init() {
	updateBackgroundCmd.Flags().BoolVar(&backgroundDryRun, "dry-run", false,
		"Generate image but don't set as background")
}
