// Package embed provides embedded assets for auto.
package embed

import (
	"embed"
)

// Assets contains all embedded files for auto.
//
//go:embed assets/*
var Assets embed.FS

// GetCopilotScript returns the AppleScript that activates Microsoft 365
// Copilot and pastes the clipboard into its chat buffer.
func GetCopilotScript() (string, error) {
	data, err := Assets.ReadFile("assets/ask_m365_copilot.applescript")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
