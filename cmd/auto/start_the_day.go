package main

import (
	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/day"
	"github.com/lsimons/auto/internal/logging"
)

var startTheDayForce bool

var startTheDayCmd = &cobra.Command{
	Use:   "start-the-day",
	Short: "Run the morning routine (at most once per day)",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("start-the-day")
		timer := logging.StartTimer("start-the-day")
		defer timer.Stop()

		return day.NewRunner().Run(startTheDayForce)
	},
}

func init() {
	startTheDayCmd.Flags().BoolVar(&startTheDayForce, "force", false,
		"Run even if the routine already ran today")
}
