// Package main provides the entry point for the auto CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/logging"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"
	// Commit is the git commit hash, set at build time via ldflags
	Commit = "unknown"
)

func main() {
	normalizeActionName()
	installInterruptHandler()
	initLogging()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		if isUnknownCommand(err) {
			fmt.Fprintln(os.Stderr, err)
			printActions(os.Stderr)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "auto",
	Short: "Personal daily-automation toolkit",
	Long: `auto dispatches small daily-automation actions: organizing the
desktop, refreshing the wallpaper, launching apps, syncing git repos,
managing Technology Council meeting files, and driving agent sessions in
tmux.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		return cmd.Help()
	},
}

var showVersion bool

func init() {
	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(organizeDesktopCmd)
	rootCmd.AddCommand(updateBackgroundCmd)
	rootCmd.AddCommand(launchAppsCmd)
	rootCmd.AddCommand(gitSyncCmd)
	rootCmd.AddCommand(gdriveSyncCmd)
	rootCmd.AddCommand(tcCmd)
	rootCmd.AddCommand(copilotCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(startTheDayCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print version information")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}

func printVersion() {
	fmt.Printf("auto %s (%s)\n", Version, Commit)
}

// normalizeActionName rewrites an underscore-spelled action name
// (organize_desktop) to its dashed form before cobra sees it.
func normalizeActionName() {
	if len(os.Args) < 2 {
		return
	}
	os.Args[1] = normalizeAction(os.Args[1])
}

func normalizeAction(name string) string {
	if strings.HasPrefix(name, "-") {
		return name
	}
	return strings.ReplaceAll(name, "_", "-")
}

// installInterruptHandler turns Ctrl-C into the conventional 130 exit.
func installInterruptHandler() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		fmt.Fprintln(os.Stderr, "\nOperation cancelled")
		os.Exit(130)
	}()
}

// initLogging points the global logger at the unified log file; stdout-only
// logging is kept when the file cannot be opened.
func initLogging() {
	debug := os.Getenv("AUTO_DEBUG") == "1"
	logger, err := logging.New(constants.LogPath(), debug)
	if err != nil {
		return
	}
	logging.SetGlobal(logger)
}

func isUnknownCommand(err error) bool {
	return strings.HasPrefix(err.Error(), "unknown command")
}

// printActions lists the available actions, sorted, the way the help text
// does.
func printActions(w *os.File) {
	fmt.Fprintln(w, "Valid actions:")
	for _, c := range rootCmd.Commands() {
		if c.Hidden {
			continue
		}
		fmt.Fprintf(w, "  %s\n", c.Name())
	}
}
