package main

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// ExitError carries a specific process exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// forwardExitCode converts a child process failure into an ExitError that
// preserves the child's exit code. Signal deaths map to 128+signal, so an
// interrupted child surfaces as 130.
func forwardExitCode(err error) error {
	if err == nil {
		return nil
	}
	var execErr *exec.ExitError
	if errors.As(err, &execErr) {
		code := execErr.ExitCode()
		if code < 0 {
			if status, ok := execErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				code = 128 + int(status.Signal())
			} else {
				code = 1
			}
		}
		return &ExitError{Code: code, Err: err}
	}
	return err
}
