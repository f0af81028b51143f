package sober

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrNotTracked is returned when an operation targets a profile with no
// tracked instance.
var ErrNotTracked = errors.New("no tracked instance for profile")

// instance is the tracked state of one spawned Sober process.
type instance struct {
	process   Process
	state     InstanceState
	startedAt time.Time
}

// Launcher spawns and tracks Sober instances, one per profile. Instances are
// keyed by profile ID. It is safe for concurrent use.
type Launcher struct {
	executor ProcessExecutor

	mu        sync.RWMutex
	instances map[string]*instance

	// Callbacks
	onStateChange func(profileID string, old, new InstanceState)
	onError       func(profileID string, err error)
}

// NewLauncher creates a new launcher using the real process executor.
func NewLauncher() *Launcher {
	return NewLauncherWithExecutor(NewRealExecutor())
}

// NewLauncherWithExecutor creates a launcher with a custom executor.
// This is primarily used for testing.
func NewLauncherWithExecutor(executor ProcessExecutor) *Launcher {
	return &Launcher{
		executor:  executor,
		instances: make(map[string]*instance),
	}
}

// OnStateChange registers a callback for instance state changes.
func (l *Launcher) OnStateChange(callback func(profileID string, old, new InstanceState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onStateChange = callback
}

// OnError registers a callback for instance errors.
func (l *Launcher) OnError(callback func(profileID string, err error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onError = callback
}

// State returns the current state of a profile's instance. A profile with no
// tracked instance is stopped.
func (l *Launcher) State(profileID string) InstanceState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	inst, ok := l.instances[profileID]
	if !ok {
		return StateStopped
	}
	return inst.state
}

// StartedAt returns when the profile's instance was launched.
func (l *Launcher) StartedAt(profileID string) (time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	inst, ok := l.instances[profileID]
	if !ok || !inst.state.IsRunning() {
		return time.Time{}, false
	}
	return inst.startedAt, true
}

// RunningProfiles returns the IDs of all profiles with a live instance.
func (l *Launcher) RunningProfiles() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var ids []string
	for id, inst := range l.instances {
		if inst.state == StateRunning || inst.state == StateLaunching {
			ids = append(ids, id)
		}
	}
	return ids
}

// setState transitions a profile's instance to a new state if the transition
// is valid. The state change callback is invoked outside the lock to prevent
// deadlocks.
func (l *Launcher) setState(profileID string, newState InstanceState) error {
	l.mu.Lock()
	inst, ok := l.instances[profileID]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotTracked, profileID)
	}
	if !IsValidTransition(inst.state, newState) {
		l.mu.Unlock()
		return fmt.Errorf("invalid state transition from %s to %s", inst.state, newState)
	}

	oldState := inst.state
	inst.state = newState
	callback := l.onStateChange
	l.mu.Unlock()

	if callback != nil {
		callback(profileID, oldState, newState)
	}
	return nil
}

// emitError sends an error to the registered callback.
func (l *Launcher) emitError(profileID string, err error) {
	l.mu.RLock()
	callback := l.onError
	l.mu.RUnlock()

	if callback != nil {
		callback(profileID, err)
	}
}

// Launch spawns a Sober instance for the profile with HOME pointed at its
// home directory. An optional deep link URI is passed through to Sober. The
// spawned process gets its own session and detached stdio, so it keeps
// running if the manager exits.
func (l *Launcher) Launch(ctx context.Context, profileID, profileHome, uri string) error {
	l.mu.Lock()
	if existing, ok := l.instances[profileID]; ok && !existing.state.CanLaunch() {
		state := existing.state
		l.mu.Unlock()
		return fmt.Errorf("cannot launch: instance is %s", state)
	}

	inst := &instance{state: StateStopped}
	l.instances[profileID] = inst
	l.mu.Unlock()

	if err := l.setState(profileID, StateLaunching); err != nil {
		return err
	}

	args := []string{"run", AppID}
	if uri != "" {
		args = append(args, uri)
	}

	process, err := l.executor.CreateProcess(ctx, profileHome, "flatpak", args...)
	if err != nil {
		l.failLaunch(profileID)
		return fmt.Errorf("failed to create process: %w", err)
	}

	if err := process.Start(); err != nil {
		l.failLaunch(profileID)
		return fmt.Errorf("failed to start flatpak: %w", err)
	}

	l.mu.Lock()
	inst.process = process
	inst.startedAt = time.Now()
	l.mu.Unlock()

	if err := l.setState(profileID, StateRunning); err != nil {
		return err
	}

	slog.Info("Launched Sober instance", "profile", profileID, "pid", process.Pid(), "uri", uri)
	l.handleProcessCompletion(profileID, process)

	return nil
}

// failLaunch marks a failed launch attempt, logging rather than surfacing
// secondary transition errors.
func (l *Launcher) failLaunch(profileID string) {
	if err := l.setState(profileID, StateFailed); err != nil {
		slog.Warn("Failed to set failed state", "profile", profileID, "error", err)
	}
}

// handleProcessCompletion waits for the process to exit and settles the
// instance state. The instance always ends up stopped when the process
// exits, whether the exit was requested or the user quit the game.
func (l *Launcher) handleProcessCompletion(profileID string, process Process) {
	go func() {
		// Wait error is intentionally ignored - we're cleaning up regardless
		_ = process.Wait()

		l.mu.Lock()
		inst, ok := l.instances[profileID]
		if !ok || inst.process != process {
			l.mu.Unlock()
			return
		}
		inst.process = nil
		currentState := inst.state
		l.mu.Unlock()

		if currentState != StateStopped {
			if err := l.setState(profileID, StateStopped); err != nil {
				slog.Warn("Failed to transition to stopped state", "profile", profileID, "error", err)
			}
		}
	}()
}

// Kill terminates the tracked instance for a profile. Returns ErrNotTracked
// if nothing is being tracked for the profile.
func (l *Launcher) Kill(profileID string) error {
	l.mu.Lock()
	inst, ok := l.instances[profileID]
	if !ok || inst.process == nil {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotTracked, profileID)
	}
	if !inst.state.CanKill() {
		state := inst.state
		l.mu.Unlock()
		return fmt.Errorf("cannot kill: instance is %s", state)
	}
	process := inst.process
	l.mu.Unlock()

	if err := l.setState(profileID, StateStopping); err != nil {
		return err
	}

	if err := process.Terminate(); err != nil {
		l.emitError(profileID, err)
		if stateErr := l.setState(profileID, StateFailed); stateErr != nil {
			slog.Warn("Failed to set failed state", "profile", profileID, "error", stateErr)
		}
		return fmt.Errorf("failed to terminate instance: %w", err)
	}

	return nil
}

// KillAll terminates every tracked instance. Errors are reported through the
// error callback and the first one is returned.
func (l *Launcher) KillAll() error {
	var firstErr error
	for _, id := range l.RunningProfiles() {
		if err := l.Kill(id); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
