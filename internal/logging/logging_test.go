package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup_Info(t *testing.T) {
	// Should not panic
	Setup(LevelInfo)
}

func TestSetup_Debug(t *testing.T) {
	// Should not panic
	Setup(LevelDebug)
}

func TestSetupFromEnv_Default(t *testing.T) {
	t.Setenv("SOBER_PROFILE_MANAGER_DEBUG", "")

	SetupFromEnv() // Should not panic, uses LevelInfo by default
}

func TestSetupFromEnv_Debug(t *testing.T) {
	t.Setenv("SOBER_PROFILE_MANAGER_DEBUG", "1")

	SetupFromEnv() // Should not panic, uses LevelDebug
}

func TestLevel_Values(t *testing.T) {
	assert.Equal(t, Level(0), LevelInfo)
	assert.Equal(t, Level(1), LevelDebug)
}
