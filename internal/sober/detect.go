package sober

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrInstanceNotFound is returned when no running Sober instance can be
// detected for a profile.
var ErrInstanceNotFound = errors.New("Sober instance not found")

// Detector probes the system for running Sober instances.
type Detector struct {
	runner CommandRunner
}

// NewDetector creates a detector backed by a real command runner.
func NewDetector() *Detector {
	return &Detector{runner: NewRealRunner()}
}

// NewDetectorWithRunner creates a detector with a custom runner.
// This is primarily used for testing.
func NewDetectorWithRunner(runner CommandRunner) *Detector {
	return &Detector{runner: runner}
}

// IsProfileRunning checks whether a Sober instance is running out of the
// given profile home. It asks `flatpak ps` first and falls back to scanning
// the process table, where the HOME= override in the launch command
// identifies the profile.
func (d *Detector) IsProfileRunning(ctx context.Context, profileHome string) bool {
	if out, err := d.runner.Output(ctx, "flatpak", "ps"); err == nil {
		if FlatpakPSMatchesProfile(string(out), profileHome) {
			return true
		}
	} else {
		slog.Debug("flatpak ps failed", "error", err)
	}

	out, err := d.runner.Output(ctx, "ps", "aux")
	if err != nil {
		slog.Debug("ps aux failed", "error", err)
		return false
	}
	return PSAuxMatchesProfile(string(out), profileHome)
}

// AnyInstanceRunning checks whether any Sober instance is running, for any
// profile.
func (d *Detector) AnyInstanceRunning(ctx context.Context) bool {
	out, err := d.runner.Output(ctx, "flatpak", "ps")
	if err != nil {
		slog.Debug("flatpak ps failed", "error", err)
		return false
	}
	return AnySoberInstance(string(out))
}

// KillAllInstances asks flatpak to terminate every Sober instance. Used as a
// backstop when no tracked process remains but an instance may still be
// alive, for example after the manager was restarted.
func (d *Detector) KillAllInstances(ctx context.Context) error {
	return d.runner.Run(ctx, "flatpak", "kill", AppID)
}

// WaitForInstance polls until a Sober instance for the profile shows up,
// with exponential backoff. Returns ErrInstanceNotFound after all retries
// are exhausted.
//
// Default values: maxRetries=5, initialBackoff=500ms
func (d *Detector) WaitForInstance(ctx context.Context, profileHome string, maxRetries int, initialBackoff time.Duration) error {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	if initialBackoff <= 0 {
		initialBackoff = 500 * time.Millisecond
	}

	backoff := initialBackoff
	for i := 0; i < maxRetries; i++ {
		if d.IsProfileRunning(ctx, profileHome) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return ErrInstanceNotFound
}
