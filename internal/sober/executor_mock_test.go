package sober

import (
	"context"
	"sync"
)

// MockProcess implements Process for testing.
type MockProcess struct {
	mu sync.Mutex

	startErr     error
	waitErr      error
	terminateErr error

	started    bool
	terminated bool

	// WaitCh can be used to control when Wait() returns
	WaitCh chan struct{}
}

// NewMockProcess creates a new mock process.
func NewMockProcess() *MockProcess {
	return &MockProcess{
		WaitCh: make(chan struct{}),
	}
}

func (p *MockProcess) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startErr != nil {
		return p.startErr
	}
	p.started = true
	return nil
}

func (p *MockProcess) Wait() error {
	<-p.WaitCh
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waitErr
}

func (p *MockProcess) Terminate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.terminateErr != nil {
		return p.terminateErr
	}
	p.terminated = true
	// Close the wait channel to unblock Wait()
	select {
	case <-p.WaitCh:
	default:
		close(p.WaitCh)
	}
	return nil
}

func (p *MockProcess) Pid() int {
	return 4242
}

// SetStartError sets an error to return from Start().
func (p *MockProcess) SetStartError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startErr = err
}

// SetTerminateError sets an error to return from Terminate().
func (p *MockProcess) SetTerminateError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.terminateErr = err
}

// IsStarted returns true if Start() was called.
func (p *MockProcess) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// IsTerminated returns true if Terminate() was called.
func (p *MockProcess) IsTerminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminated
}

// CompleteProcess signals that the process should complete.
func (p *MockProcess) CompleteProcess() {
	select {
	case <-p.WaitCh:
	default:
		close(p.WaitCh)
	}
}

// MockExecutor implements ProcessExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	createErr error
	process   *MockProcess

	// Captured values
	lastHome string
	lastName string
	lastArgs []string
}

// NewMockExecutor creates a new mock executor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		process: NewMockProcess(),
	}
}

// CreateProcess implements ProcessExecutor.
func (e *MockExecutor) CreateProcess(_ context.Context, homeDir, name string, args ...string) (Process, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastHome = homeDir
	e.lastName = name
	e.lastArgs = args

	if e.createErr != nil {
		return nil, e.createErr
	}

	return e.process, nil
}

// SetCreateError sets an error to return from CreateProcess.
func (e *MockExecutor) SetCreateError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.createErr = err
}

// GetProcess returns the mock process.
func (e *MockExecutor) GetProcess() *MockProcess {
	return e.process
}

// GetLastHome returns the last home directory passed to CreateProcess.
func (e *MockExecutor) GetLastHome() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastHome
}

// GetLastName returns the last command name passed to CreateProcess.
func (e *MockExecutor) GetLastName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastName
}

// GetLastArgs returns the last args passed to CreateProcess.
func (e *MockExecutor) GetLastArgs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastArgs
}

// MockRunner implements CommandRunner for testing.
type MockRunner struct {
	mu sync.Mutex

	outputs map[string][]byte
	outErr  error
	runErr  error

	runCalls [][]string
}

// NewMockRunner creates a mock runner with canned outputs keyed by command name.
func NewMockRunner() *MockRunner {
	return &MockRunner{outputs: make(map[string][]byte)}
}

// SetOutput sets the canned output for a command name.
func (r *MockRunner) SetOutput(name string, output string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[name] = []byte(output)
}

// SetOutputError sets an error to return from Output().
func (r *MockRunner) SetOutputError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outErr = err
}

func (r *MockRunner) Output(_ context.Context, name string, _ ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outErr != nil {
		return nil, r.outErr
	}
	return r.outputs[name], nil
}

func (r *MockRunner) Run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runCalls = append(r.runCalls, append([]string{name}, args...))
	return r.runErr
}

// RunCalls returns every command passed to Run().
func (r *MockRunner) RunCalls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runCalls
}
