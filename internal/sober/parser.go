package sober

import (
	"strings"
)

// FlatpakInstance is one row of `flatpak ps` output.
type FlatpakInstance struct {
	InstanceID string
	PID        string
	AppID      string
	Line       string
}

// ParseFlatpakPS parses the output of `flatpak ps`. The first line is a
// header when the command is run on a terminal, but flatpak omits it when
// piped, so every line is treated as data and non-matching rows are skipped.
func ParseFlatpakPS(output string) []FlatpakInstance {
	var instances []FlatpakInstance

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 3 {
			continue
		}
		// Header row from interactive runs
		if fields[0] == "Instance" {
			continue
		}

		instances = append(instances, FlatpakInstance{
			InstanceID: fields[0],
			PID:        fields[1],
			AppID:      fields[2],
			Line:       trimmed,
		})
	}

	return instances
}

// SoberInstances filters flatpak ps output down to running Sober instances.
func SoberInstances(output string) []FlatpakInstance {
	var result []FlatpakInstance
	for _, inst := range ParseFlatpakPS(output) {
		if strings.Contains(inst.Line, AppID) {
			result = append(result, inst)
		}
	}
	return result
}

// FlatpakPSMatchesProfile reports whether any `flatpak ps` row belongs to a
// Sober instance running out of the given profile home.
func FlatpakPSMatchesProfile(output, profileHome string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, AppID) && strings.Contains(line, profileHome) {
			return true
		}
	}
	return false
}

// PSAuxMatchesProfile reports whether any `ps aux` row shows a Sober process
// launched with the given profile home. The launch command carries an
// explicit HOME= assignment, which is what identifies the owning profile.
func PSAuxMatchesProfile(output, profileHome string) bool {
	needle := "HOME=" + profileHome
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, AppID) && strings.Contains(line, needle) {
			return true
		}
	}
	return false
}

// AnySoberInstance reports whether any Sober instance shows up in `flatpak ps`
// output, regardless of profile.
func AnySoberInstance(output string) bool {
	return len(SoberInstances(output)) > 0
}
