package sober

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// killGracePeriod is how long a terminated instance gets to shut down before
// it is force killed.
const killGracePeriod = 2 * time.Second

// Process represents a spawned Sober instance.
type Process interface {
	// Start starts the process but does not wait for it to complete.
	Start() error
	// Wait waits for the process to exit and returns the error.
	Wait() error
	// Terminate asks the process group to shut down and force kills it after
	// a grace period.
	Terminate() error
	// Pid returns the process ID, or 0 if the process was never started.
	Pid() int
}

// ProcessExecutor creates processes for execution.
type ProcessExecutor interface {
	// CreateProcess creates a new process with HOME pointed at the given
	// directory.
	CreateProcess(ctx context.Context, homeDir, name string, args ...string) (Process, error)
}

// RealExecutor implements ProcessExecutor using os/exec.
type RealExecutor struct{}

// NewRealExecutor creates a new RealExecutor.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

// CreateProcess creates a real process. The context only gates creation; the
// process is not tied to its lifetime, so an instance keeps running when the
// context is cancelled or the manager exits. The process gets its own session
// and its stdio is detached to /dev/null. HOME is overridden in the
// environment so the flatpak sandbox picks up the profile's directory.
func (e *RealExecutor) CreateProcess(ctx context.Context, homeDir, name string, args ...string) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(name, args...)

	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	env := make([]string, 0, len(os.Environ())+1)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "HOME=") {
			continue
		}
		env = append(env, kv)
	}
	cmd.Env = append(env, "HOME="+homeDir)

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	cmd.Stdin = devnull
	cmd.Stdout = devnull
	cmd.Stderr = devnull

	return &realProcess{cmd: cmd, devnull: devnull}, nil
}

// realProcess wraps exec.Cmd to implement the Process interface.
type realProcess struct {
	cmd     *exec.Cmd
	devnull *os.File
}

func (p *realProcess) Start() error {
	return p.cmd.Start()
}

func (p *realProcess) Wait() error {
	defer func() { _ = p.devnull.Close() }()
	return p.cmd.Wait()
}

func (p *realProcess) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Terminate shuts down the instance and all its children by signalling the
// process group. The process is started with Setsid, so the PGID equals the
// PID and a negative PID targets the whole group.
//
// SIGTERM is sent first to let Sober flush its state. If the group is still
// alive after the grace period, it gets SIGKILL.
func (p *realProcess) Terminate() error {
	if p.cmd.Process == nil {
		return nil
	}

	pgid := p.cmd.Process.Pid

	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
		if err == syscall.ESRCH {
			// Process group already gone
			return nil
		}
		return fmt.Errorf("failed to terminate process group: %w", err)
	}

	deadline := time.Now().Add(killGracePeriod)
	for time.Now().Before(deadline) {
		if err := syscall.Kill(-pgid, 0); err == syscall.ESRCH {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("failed to kill process group: %w", err)
	}
	return nil
}
