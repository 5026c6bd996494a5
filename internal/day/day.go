// Package day implements the morning startup routine.
package day

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"github.com/lsimons/auto/internal/constants"
	"github.com/lsimons/auto/internal/logging"
	"github.com/lsimons/auto/internal/state"
)

var (
	yellow = color.New(color.FgYellow).FprintlnFunc()
	blue   = color.New(color.FgBlue).FprintlnFunc()
	green  = color.New(color.FgGreen).FprintlnFunc()
)

// Runner executes the daily startup steps as child invocations of the auto
// binary, gated to at most one run per calendar day.
type Runner struct {
	StatePath string
	Out       io.Writer

	// run executes one child action; replaced in tests.
	run func(action string) error
}

// NewRunner returns a runner using the default state file and stdout.
func NewRunner() *Runner {
	return &Runner{
		StatePath: constants.StatePath(),
		Out:       os.Stdout,
		run:       runAction,
	}
}

// runAction invokes the auto binary itself so each step goes through normal
// dispatch. exe falls back to plain "auto" when self-lookup fails.
func runAction(action string) error {
	exe, err := os.Executable()
	if err != nil {
		exe = "auto"
	}
	cmd := exec.Command(exe, action)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, out)
	}
	return nil
}

type step struct {
	action string
	doing  string
	done   string
}

var steps = []step{
	{"organize-desktop", "Organizing desktop", "Desktop organized"},
	{"update-desktop-background", "Updating desktop background", "Desktop background updated"},
	{"launch-apps", "Launching apps", "Apps launched"},
}

// Run performs the routine. Unless force is set, a run earlier today makes
// it a cheerful no-op. Individual step failures are warnings, not aborts.
func (r *Runner) Run(force bool) error {
	if r.run == nil {
		r.run = runAction
	}

	if !force && state.AlreadyRanToday(r.StatePath) {
		fmt.Fprintln(r.Out, "Already ran today. Have a great day!")
		return nil
	}

	yellow(r.Out, "Good morning!")
	blue(r.Out, "Starting your day...")

	for _, s := range steps {
		fmt.Fprintf(r.Out, "%s...\n", s.doing)
		if err := r.run(s.action); err != nil {
			logging.Warn("step %s failed: %v", s.action, err)
			fmt.Fprintf(r.Out, "Warning: Failed to %s: %v\n", lowerFirst(s.doing), err)
			continue
		}
		green(r.Out, "✓ "+s.done)
	}

	green(r.Out, "✓ Daily startup routine completed")

	if err := state.MarkRanToday(r.StatePath); err != nil {
		return err
	}
	fmt.Fprintln(r.Out, "Daily startup completed successfully!")
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
