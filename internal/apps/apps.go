// Package apps launches the daily set of applications in the background.
package apps

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/lsimons/auto/internal/logging"
)

// defaultCommands is the built-in launch list, used when no config file
// overrides it.
var defaultCommands = []string{
	"open -g -a /System/Applications/TextEdit.app ~/scratch.txt",
	"open -g /Applications/Ghostty.app",
	"open -g -a '/Applications/Brave Browser.app' 'https://schubergphilis.okta-emea.com/'",
	"open -g /Applications/Slack.app",
	"open -g '/Applications/Zed.app'",
	"open -g '/Applications/Microsoft Outlook.app'",
	"open -g '/Applications/Microsoft Teams.app'",
	"open -g '/Applications/Microsoft Word.app'",
	"open -g '/Applications/Microsoft Excel.app'",
	"open -g '/Applications/Microsoft PowerPoint.app'",
	"open -g '/Users/lsimons/Applications/IntelliJ IDEA Ultimate.app'",
}

// config is the optional YAML override for the launch list.
type config struct {
	Commands []string `yaml:"commands"`
}

// LoadCommands returns the commands from the config file at path, or the
// built-in list when the file is absent. A present but unparseable file is
// an error so typos do not silently fall back.
func LoadCommands(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultCommands, nil
		}
		return nil, fmt.Errorf("failed to read launch config: %w", err)
	}

	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse launch config %s: %w", path, err)
	}
	return cfg.Commands, nil
}

// launch starts one shell command detached from the current session.
func launch(command string, out io.Writer) bool {
	fmt.Fprintf(out, "Launching: %s\n", command)

	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(out, "  → Error launching command: %v\n", err)
		return false
	}

	fmt.Fprintf(out, "  → Process started with PID: %d\n", cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Debug("launched command exited: %v", err)
		}
	}()
	return true
}

// LaunchAll starts every command, reporting a success tally at the end.
func LaunchAll(commands []string, out io.Writer) {
	if len(commands) == 0 {
		fmt.Fprintln(out, "No commands configured to launch")
		return
	}

	fmt.Fprintf(out, "Launching %d command(s)...\n", len(commands))

	success := 0
	for _, command := range commands {
		if launch(command, out) {
			success++
		}
	}

	fmt.Fprintf(out, "\nLaunch completed: %d/%d commands started successfully\n", success, len(commands))
	if success < len(commands) {
		fmt.Fprintln(out, "Some commands failed to launch. Check the output above for details.")
	}
}

// List prints the configured commands without launching them.
func List(commands []string, out io.Writer) {
	fmt.Fprintln(out, "Configured launch commands:")
	for i, command := range commands {
		fmt.Fprintf(out, "  %d. %s\n", i+1, command)
	}
}
