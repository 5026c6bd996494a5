package main

import (
	"errors"
	"os/exec"
	"testing"
)

func TestNormalizeAction(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"organize_desktop", "organize-desktop"},
		{"organize-desktop", "organize-desktop"},
		{"start_the_day", "start-the-day"},
		{"echo", "echo"},
		{"--version", "--version"},
		{"-v", "-v"},
	}
	for _, tt := range tests {
		if got := normalizeAction(tt.in); got != tt.want {
			t.Errorf("normalizeAction(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForwardExitCodePreservesCode(t *testing.T) {
	err := exec.Command("sh", "-c", "exit 3").Run()
	if err == nil {
		t.Fatal("expected command to fail")
	}

	forwarded := forwardExitCode(err)
	var exitErr *ExitError
	if !errors.As(forwarded, &exitErr) {
		t.Fatalf("expected ExitError, got %T", forwarded)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
}

func TestForwardExitCodePassthrough(t *testing.T) {
	if got := forwardExitCode(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}

	plain := errors.New("nope")
	if got := forwardExitCode(plain); got != plain {
		t.Errorf("expected error unchanged, got %v", got)
	}
}

func TestIsUnknownCommand(t *testing.T) {
	if !isUnknownCommand(errors.New(`unknown command "frobnicate" for "auto"`)) {
		t.Error("expected unknown command error to be detected")
	}
	if isUnknownCommand(errors.New("something else")) {
		t.Error("expected other errors not to be detected")
	}
}
