// Package sober manages Sober flatpak instances, one per profile.
package sober

// AppID is the flatpak application ID of the Sober runtime.
const AppID = "org.vinegarhq.Sober"

// InstanceState represents the lifecycle state of a Sober instance.
type InstanceState string

const (
	// StateStopped indicates no instance is running for the profile.
	StateStopped InstanceState = "stopped"
	// StateLaunching indicates the flatpak is being spawned.
	StateLaunching InstanceState = "launching"
	// StateRunning indicates the instance is up.
	StateRunning InstanceState = "running"
	// StateStopping indicates the instance is being terminated.
	StateStopping InstanceState = "stopping"
	// StateFailed indicates the launch attempt failed.
	StateFailed InstanceState = "failed"
)

// IsRunning returns true if the state represents a live instance.
func (s InstanceState) IsRunning() bool {
	return s == StateRunning
}

// IsTransitioning returns true if the state represents an in-progress launch or shutdown.
func (s InstanceState) IsTransitioning() bool {
	return s == StateLaunching || s == StateStopping
}

// CanLaunch returns true if a new instance can be started from this state.
func (s InstanceState) CanLaunch() bool {
	return s == StateStopped || s == StateFailed
}

// CanKill returns true if the instance can be terminated from this state.
func (s InstanceState) CanKill() bool {
	return s == StateLaunching || s == StateRunning
}

// validTransitions defines the allowed state transitions.
var validTransitions = map[InstanceState][]InstanceState{
	StateStopped: {
		StateLaunching,
	},
	StateLaunching: {
		StateRunning,
		StateStopping,
		StateStopped, // Process exited before it was ever confirmed up
		StateFailed,
	},
	StateRunning: {
		StateStopping,
		StateStopped, // Process exited on its own (user quit the game)
	},
	StateStopping: {
		StateStopped,
		StateFailed,
	},
	StateFailed: {
		StateLaunching,
		StateStopped,
	},
}

// IsValidTransition checks if transitioning from one state to another is allowed.
func IsValidTransition(from, to InstanceState) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// AllStates returns all possible instance states.
func AllStates() []InstanceState {
	return []InstanceState{
		StateStopped,
		StateLaunching,
		StateRunning,
		StateStopping,
		StateFailed,
	}
}
