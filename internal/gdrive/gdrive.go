// Package gdrive backs up Google Drive to a local volume with rclone. The
// sync is pinned to one host and one mounted volume so a stray laptop run
// cannot clobber the backup.
package gdrive

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lsimons/auto/internal/constants"
)

// Syncer runs one rclone pass.
type Syncer struct {
	Host   string // required hostname
	Volume string // required mount point
	Out    io.Writer

	// hostname and lookPath are replaced in tests.
	hostname func() (string, error)
	lookPath func(string) (string, error)
}

// NewSyncer returns a syncer with the production host and volume pins.
func NewSyncer(out io.Writer) *Syncer {
	return &Syncer{
		Host:     constants.GDriveHost,
		Volume:   constants.GDriveVolume,
		Out:      out,
		hostname: os.Hostname,
		lookPath: exec.LookPath,
	}
}

// ShouldRun checks the host and volume pins. A false return comes with a
// human-readable reason.
func (s *Syncer) ShouldRun() (bool, string) {
	if s.hostname == nil {
		s.hostname = os.Hostname
	}
	host, err := s.hostname()
	if err != nil {
		return false, fmt.Sprintf("cannot determine hostname: %v", err)
	}
	if !strings.EqualFold(host, s.Host) {
		return false, fmt.Sprintf("Hostname is '%s', expected '%s'.", host, s.Host)
	}
	if _, err := os.Stat(s.Volume); err != nil {
		return false, fmt.Sprintf("%s is not available/mounted.", s.Volume)
	}
	return true, ""
}

// RclonePath resolves the rclone binary: the Homebrew location first (launchd
// jobs have a minimal PATH), then PATH lookup.
func (s *Syncer) RclonePath() (string, error) {
	if s.lookPath == nil {
		s.lookPath = exec.LookPath
	}
	if _, err := os.Stat(constants.HomebrewRclone); err == nil {
		return constants.HomebrewRclone, nil
	}
	path, err := s.lookPath("rclone")
	if err != nil {
		return "", fmt.Errorf("rclone is not installed or not in PATH")
	}
	return path, nil
}

// Sync runs rclone sync gdrive: onto the volume, streaming rclone's own
// output to the terminal.
func (s *Syncer) Sync() error {
	ok, reason := s.ShouldRun()
	if !ok {
		fmt.Fprintf(s.Out, "Skipping: %s\n", reason)
		return nil
	}

	rclone, err := s.RclonePath()
	if err != nil {
		return err
	}

	dest := filepath.Join(s.Volume, constants.GDriveDestName)
	fmt.Fprintf(s.Out, "Syncing %s to %s...\n", constants.GDriveRemote, dest)

	cmd := exec.Command(rclone, "sync", constants.GDriveRemote, dest, "--verbose")
	cmd.Stdout = s.Out
	cmd.Stderr = s.Out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error executing rclone: %w", err)
	}

	fmt.Fprintln(s.Out, "Sync completed successfully.")
	return nil
}
