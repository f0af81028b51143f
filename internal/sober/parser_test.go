package sober

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flatpakPSOutput = `Instance   PID   Application           Runtime
2914868    1234  org.vinegarhq.Sober   org.freedesktop.Platform
1077155    5678  org.mozilla.firefox   org.freedesktop.Platform`

const flatpakPSNoHeader = `2914868 1234 org.vinegarhq.Sober org.freedesktop.Platform
1077155 5678 org.mozilla.firefox org.freedesktop.Platform`

func TestParseFlatpakPS(t *testing.T) {
	instances := ParseFlatpakPS(flatpakPSOutput)

	require.Len(t, instances, 2)
	assert.Equal(t, "2914868", instances[0].InstanceID)
	assert.Equal(t, "1234", instances[0].PID)
	assert.Equal(t, "org.vinegarhq.Sober", instances[0].AppID)
	assert.Equal(t, "org.mozilla.firefox", instances[1].AppID)
}

func TestParseFlatpakPS_NoHeader(t *testing.T) {
	instances := ParseFlatpakPS(flatpakPSNoHeader)
	assert.Len(t, instances, 2)
}

func TestParseFlatpakPS_Empty(t *testing.T) {
	assert.Empty(t, ParseFlatpakPS(""))
	assert.Empty(t, ParseFlatpakPS("\n\n"))
}

func TestParseFlatpakPS_SkipsShortRows(t *testing.T) {
	assert.Empty(t, ParseFlatpakPS("2914868 1234"))
}

func TestSoberInstances(t *testing.T) {
	instances := SoberInstances(flatpakPSOutput)

	require.Len(t, instances, 1)
	assert.Equal(t, "org.vinegarhq.Sober", instances[0].AppID)
}

func TestAnySoberInstance(t *testing.T) {
	assert.True(t, AnySoberInstance(flatpakPSOutput))
	assert.False(t, AnySoberInstance("1077155 5678 org.mozilla.firefox runtime"))
	assert.False(t, AnySoberInstance(""))
}

func TestFlatpakPSMatchesProfile(t *testing.T) {
	output := `2914868 1234 org.vinegarhq.Sober org.freedesktop.Platform /home/user/homes/main`

	assert.True(t, FlatpakPSMatchesProfile(output, "/home/user/homes/main"))
	assert.False(t, FlatpakPSMatchesProfile(output, "/home/user/homes/alt"))
	assert.False(t, FlatpakPSMatchesProfile("", "/home/user/homes/main"))
}

func TestPSAuxMatchesProfile(t *testing.T) {
	output := `user 1234 0.1 2.3 env HOME=/home/user/homes/main flatpak run org.vinegarhq.Sober
user 5678 0.0 0.1 grep org.vinegarhq.Sober`

	assert.True(t, PSAuxMatchesProfile(output, "/home/user/homes/main"))
	assert.False(t, PSAuxMatchesProfile(output, "/home/user/homes/alt"))
}

func TestPSAuxMatchesProfile_RequiresAppID(t *testing.T) {
	output := `user 1234 0.1 2.3 env HOME=/home/user/homes/main some-other-app`

	assert.False(t, PSAuxMatchesProfile(output, "/home/user/homes/main"))
}
