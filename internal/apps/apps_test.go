package apps

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCommandsMissingFileUsesDefaults(t *testing.T) {
	cmds, err := LoadCommands(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) == 0 {
		t.Fatal("expected built-in commands")
	}
	if !strings.Contains(cmds[0], "open -g") {
		t.Errorf("first default = %q", cmds[0])
	}
}

func TestLoadCommandsFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launch-apps.yaml")
	content := "commands:\n  - open -g /Applications/Safari.app\n  - open -g /Applications/Mail.app\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cmds, err := LoadCommands(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"open -g /Applications/Safari.app",
		"open -g /Applications/Mail.app",
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Errorf("command %d = %q, want %q", i, cmds[i], want[i])
		}
	}
}

func TestLoadCommandsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launch-apps.yaml")
	if err := os.WriteFile(path, []byte("commands: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCommands(path); err == nil {
		t.Error("expected parse error for bad YAML")
	}
}

func TestList(t *testing.T) {
	out := &bytes.Buffer{}
	List([]string{"cmd-a", "cmd-b"}, out)
	got := out.String()
	if !strings.Contains(got, "  1. cmd-a") || !strings.Contains(got, "  2. cmd-b") {
		t.Errorf("output:\n%s", got)
	}
}

func TestLaunchAllEmpty(t *testing.T) {
	out := &bytes.Buffer{}
	LaunchAll(nil, out)
	if !strings.Contains(out.String(), "No commands configured") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestLaunchAllRunsCommands(t *testing.T) {
	out := &bytes.Buffer{}
	LaunchAll([]string{"true"}, out)
	if !strings.Contains(out.String(), "Launch completed: 1/1") {
		t.Errorf("output:\n%s", out.String())
	}
}
