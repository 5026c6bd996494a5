package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	echoUpper  bool
	echoPrefix string
)

var echoCmd = &cobra.Command{
	Use:   "echo [message...]",
	Short: "Echo a message (dispatcher smoke test)",
	Run: func(cmd *cobra.Command, args []string) {
		message := "Hello, World!"
		if len(args) > 0 {
			message = strings.Join(args, " ")
		}
		if echoUpper {
			message = strings.ToUpper(message)
		}
		if echoPrefix != "" {
			message = echoPrefix + ": " + message
		}
		fmt.Println(message)
	},
}

func init() {
	echoCmd.Flags().BoolVar(&echoUpper, "upper", false, "Convert to uppercase")
	echoCmd.Flags().StringVar(&echoPrefix, "prefix", "", "Prefix to add")
}
