package sober

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceState_IsRunning(t *testing.T) {
	tests := []struct {
		state    InstanceState
		expected bool
	}{
		{StateStopped, false},
		{StateLaunching, false},
		{StateRunning, true},
		{StateStopping, false},
		{StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.IsRunning())
		})
	}
}

func TestInstanceState_IsTransitioning(t *testing.T) {
	tests := []struct {
		state    InstanceState
		expected bool
	}{
		{StateStopped, false},
		{StateLaunching, true},
		{StateRunning, false},
		{StateStopping, true},
		{StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.IsTransitioning())
		})
	}
}

func TestInstanceState_CanLaunch(t *testing.T) {
	tests := []struct {
		state    InstanceState
		expected bool
	}{
		{StateStopped, true},
		{StateLaunching, false},
		{StateRunning, false},
		{StateStopping, false},
		{StateFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.CanLaunch())
		})
	}
}

func TestInstanceState_CanKill(t *testing.T) {
	tests := []struct {
		state    InstanceState
		expected bool
	}{
		{StateStopped, false},
		{StateLaunching, true},
		{StateRunning, true},
		{StateStopping, false},
		{StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.CanKill())
		})
	}
}

func TestValidTransitions(t *testing.T) {
	valid := []struct {
		from InstanceState
		to   InstanceState
	}{
		{StateStopped, StateLaunching},

		{StateLaunching, StateRunning},
		{StateLaunching, StateStopping},
		{StateLaunching, StateStopped},
		{StateLaunching, StateFailed},

		{StateRunning, StateStopping},
		{StateRunning, StateStopped},

		{StateStopping, StateStopped},
		{StateStopping, StateFailed},

		{StateFailed, StateLaunching},
		{StateFailed, StateStopped},
	}

	for _, tt := range valid {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.True(t, IsValidTransition(tt.from, tt.to),
				"Expected transition from %s to %s to be valid", tt.from, tt.to)
		})
	}
}

func TestInvalidTransitions(t *testing.T) {
	invalid := []struct {
		from InstanceState
		to   InstanceState
	}{
		// Cannot be running without launching first
		{StateStopped, StateRunning},
		{StateFailed, StateRunning},

		// Cannot stop what isn't running
		{StateStopped, StateStopping},
		{StateFailed, StateStopping},

		// Cannot go backward from running
		{StateRunning, StateLaunching},

		// Self transitions are not valid
		{StateStopped, StateStopped},
		{StateRunning, StateRunning},
	}

	for _, tt := range invalid {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.False(t, IsValidTransition(tt.from, tt.to),
				"Expected transition from %s to %s to be invalid", tt.from, tt.to)
		})
	}
}

func TestAllStates(t *testing.T) {
	states := AllStates()

	assert.Len(t, states, 5)
	assert.Contains(t, states, StateStopped)
	assert.Contains(t, states, StateLaunching)
	assert.Contains(t, states, StateRunning)
	assert.Contains(t, states, StateStopping)
	assert.Contains(t, states, StateFailed)
}

func TestIsValidTransition_UnknownState(t *testing.T) {
	unknown := InstanceState("unknown")

	assert.False(t, IsValidTransition(unknown, StateRunning))
	assert.False(t, IsValidTransition(StateStopped, unknown))
}
