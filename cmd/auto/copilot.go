package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/embed"
	"github.com/lsimons/auto/internal/logging"
	"github.com/lsimons/auto/internal/osa"
)

var copilotCmd = &cobra.Command{
	Use:   "copilot",
	Short: "Send the clipboard to Microsoft 365 Copilot as a new chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Global().SetAction("copilot")

		script, err := embed.GetCopilotScript()
		if err != nil {
			return err
		}

		out, err := osa.New().Run(script)
		if err != nil {
			return forwardExitCode(err)
		}
		if out != "" {
			fmt.Println(out)
		}
		return nil
	},
}
