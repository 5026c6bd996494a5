package day

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lsimons/auto/internal/state"
)

func newTestRunner(t *testing.T, run func(string) error) (*Runner, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	r := &Runner{
		StatePath: filepath.Join(t.TempDir(), "state.toml"),
		Out:       out,
		run:       run,
	}
	return r, out
}

func TestRunExecutesStepsAndMarksState(t *testing.T) {
	var ran []string
	r, out := newTestRunner(t, func(action string) error {
		ran = append(ran, action)
		return nil
	})

	if err := r.Run(false); err != nil {
		t.Fatal(err)
	}

	want := []string{"organize-desktop", "update-desktop-background", "launch-apps"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, ran[i], want[i])
		}
	}
	if !state.AlreadyRanToday(r.StatePath) {
		t.Error("state not marked after successful run")
	}
	if !strings.Contains(out.String(), "Daily startup completed successfully!") {
		t.Errorf("missing completion message:\n%s", out.String())
	}
}

func TestRunSkipsWhenAlreadyRanToday(t *testing.T) {
	called := false
	r, out := newTestRunner(t, func(string) error {
		called = true
		return nil
	})
	if err := state.MarkRanToday(r.StatePath); err != nil {
		t.Fatal(err)
	}

	if err := r.Run(false); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("steps ran despite gate")
	}
	if !strings.Contains(out.String(), "Already ran today") {
		t.Errorf("missing gate message:\n%s", out.String())
	}
}

func TestRunForceBypassesGate(t *testing.T) {
	var count int
	r, _ := newTestRunner(t, func(string) error {
		count++
		return nil
	})
	if err := state.MarkRanToday(r.StatePath); err != nil {
		t.Fatal(err)
	}

	if err := r.Run(true); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("ran %d steps with --force, want 3", count)
	}
}

func TestRunStepFailureIsWarning(t *testing.T) {
	r, out := newTestRunner(t, func(action string) error {
		if action == "organize-desktop" {
			return errors.New("boom")
		}
		return nil
	})

	if err := r.Run(false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Warning: Failed to organizing desktop") {
		t.Errorf("missing warning:\n%s", out.String())
	}
	if !state.AlreadyRanToday(r.StatePath) {
		t.Error("state not marked despite warning-only failure")
	}
}
