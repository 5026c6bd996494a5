// Package osa runs AppleScript through osascript.
package osa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lsimons/auto/internal/constants"
)

// ErrNotAvailable indicates that osascript is missing (not running on macOS).
var ErrNotAvailable = errors.New("osascript not found. This action requires macOS")

// Client runs AppleScript sources.
type Client interface {
	// Run executes an inline AppleScript and returns its stdout.
	Run(script string) (string, error)
}

type osaClient struct{}

// New creates a new AppleScript client.
func New() Client {
	return &osaClient{}
}

func (c *osaClient) Run(script string) (string, error) {
	return c.exec("-e", script)
}

func (c *osaClient) exec(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ScriptTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrNotAvailable
		}
		return "", fmt.Errorf("osascript failed: %w: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Escape quotes a string for embedding in an AppleScript double-quoted
// string literal.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
