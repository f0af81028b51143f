package sober

import (
	"context"
	"os/exec"
)

// CommandRunner runs short-lived commands and captures their output. It
// exists so instance detection can be tested without a flatpak install.
type CommandRunner interface {
	// Output runs the command and returns its combined standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command and discards its output.
	Run(ctx context.Context, name string, args ...string) error
}

// RealRunner implements CommandRunner using os/exec.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Output runs the command and returns its standard output.
func (r *RealRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Run runs the command, discarding output.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
