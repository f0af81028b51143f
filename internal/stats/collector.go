package stats

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is the default interval between usage polls.
const DefaultPollInterval = 5 * time.Second

// Target is one profile to sample.
type Target struct {
	ProfileID string
	Path      string
}

// TargetFunc supplies the set of profiles to sample on each poll.
type TargetFunc func() []Target

// UptimeFunc reports when a profile's instance was launched, if it is running.
type UptimeFunc func(profileID string) (time.Time, bool)

// Collector periodically samples disk usage and uptime for all profiles.
// It drives the auto-refresh display in the UI.
type Collector struct {
	pollInterval time.Duration
	targets      TargetFunc
	uptime       UptimeFunc

	mu      sync.RWMutex
	onUsage func([]ProfileUsage)

	stopChan chan struct{}
	stopped  bool
	running  bool
}

// NewCollector creates a new usage collector with the given poll interval.
// If pollInterval is 0, DefaultPollInterval is used.
func NewCollector(pollInterval time.Duration, targets TargetFunc, uptime UptimeFunc) *Collector {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Collector{
		pollInterval: pollInterval,
		targets:      targets,
		uptime:       uptime,
		stopChan:     make(chan struct{}),
	}
}

// OnUsage registers a callback that is invoked with each batch of samples.
// The callback is called from the polling goroutine.
func (c *Collector) OnUsage(callback func([]ProfileUsage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUsage = callback
}

// Start begins the polling loop. Starting an already running collector is a
// no-op.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.running = true
	c.stopped = false
	c.stopChan = make(chan struct{})

	go c.pollLoop()

	slog.Info("Usage collector started", "interval", c.pollInterval)
}

// Stop stops the collector.
func (c *Collector) Stop() {
	c.mu.Lock()
	if c.stopped || !c.running {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.running = false
	close(c.stopChan)
	c.mu.Unlock()

	slog.Info("Usage collector stopped")
}

// IsRunning returns true if the collector is actively polling.
func (c *Collector) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// pollLoop runs the main polling loop.
func (c *Collector) pollLoop() {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// Emit an initial sample immediately.
	c.collectAndEmit()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.collectAndEmit()
		}
	}
}

// collectAndEmit samples every target and emits the batch.
func (c *Collector) collectAndEmit() {
	samples := c.Collect()

	c.mu.RLock()
	callback := c.onUsage
	c.mu.RUnlock()

	if callback != nil {
		callback(samples)
	}
}

// Collect takes one synchronous sample of every target. Exposed so the UI can
// refresh on demand without waiting for the next tick.
func (c *Collector) Collect() []ProfileUsage {
	now := time.Now()
	targets := c.targets()

	samples := make([]ProfileUsage, 0, len(targets))
	for _, t := range targets {
		usage := ProfileUsage{
			ProfileID: t.ProfileID,
			Path:      t.Path,
			DiskBytes: DirSize(t.Path),
			Timestamp: now,
		}
		if startedAt, ok := c.uptime(t.ProfileID); ok {
			usage.Running = true
			usage.Uptime = now.Sub(startedAt)
		}
		samples = append(samples, usage)
	}
	return samples
}
