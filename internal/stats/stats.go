// Package stats collects disk usage and uptime for profile home directories.
package stats

import (
	"io/fs"
	"path/filepath"
	"time"
)

// ProfileUsage contains resource usage for one profile.
type ProfileUsage struct {
	// ProfileID is the UUID of the profile.
	ProfileID string

	// Path is the profile's home directory.
	Path string

	// DiskBytes is the total size of the profile's home directory.
	DiskBytes uint64

	// Running reports whether an instance was up when the sample was taken.
	Running bool
	// Uptime is the time since the instance was launched. Zero when not running.
	Uptime time.Duration

	// Timestamp is when this sample was collected.
	Timestamp time.Time
}

// DirSize walks a directory tree and sums the size of all regular files.
// Unreadable entries are skipped rather than failing the whole walk, since a
// profile home can hold files with odd permissions left behind by the sandbox.
func DirSize(path string) uint64 {
	var total uint64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += uint64(info.Size())
			}
		}
		return nil
	})
	return total
}
