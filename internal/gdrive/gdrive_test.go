package gdrive

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/lsimons/auto/internal/constants"
)

func TestShouldRunWrongHost(t *testing.T) {
	s := &Syncer{
		Host:     "paddo",
		Volume:   t.TempDir(),
		hostname: func() (string, error) { return "laptop", nil },
	}
	ok, reason := s.ShouldRun()
	if ok {
		t.Fatal("should not run on wrong host")
	}
	if !strings.Contains(reason, "laptop") || !strings.Contains(reason, "paddo") {
		t.Errorf("reason = %q", reason)
	}
}

func TestShouldRunHostCaseInsensitive(t *testing.T) {
	s := &Syncer{
		Host:     "paddo",
		Volume:   t.TempDir(),
		hostname: func() (string, error) { return "Paddo", nil },
	}
	if ok, reason := s.ShouldRun(); !ok {
		t.Errorf("case difference should not block: %s", reason)
	}
}

func TestShouldRunMissingVolume(t *testing.T) {
	s := &Syncer{
		Host:     "paddo",
		Volume:   "/nonexistent/LSData",
		hostname: func() (string, error) { return "paddo", nil },
	}
	ok, reason := s.ShouldRun()
	if ok {
		t.Fatal("should not run without the volume")
	}
	if !strings.Contains(reason, "not available/mounted") {
		t.Errorf("reason = %q", reason)
	}
}

func TestSyncSkipsQuietly(t *testing.T) {
	out := &bytes.Buffer{}
	s := &Syncer{
		Host:     "paddo",
		Volume:   "/nonexistent/LSData",
		Out:      out,
		hostname: func() (string, error) { return "other", nil },
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("skip must not be an error: %v", err)
	}
	if !strings.Contains(out.String(), "Skipping:") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRclonePathFallsBackToLookPath(t *testing.T) {
	if _, err := os.Stat(constants.HomebrewRclone); err == nil {
		t.Skip("Homebrew rclone present on this machine")
	}
	s := &Syncer{
		lookPath: func(name string) (string, error) { return "/usr/local/bin/" + name, nil },
	}
	path, err := s.RclonePath()
	if err != nil {
		t.Fatal(err)
	}
	// The Homebrew path does not exist in the test environment.
	if path != "/usr/local/bin/rclone" {
		t.Errorf("path = %q", path)
	}
}
