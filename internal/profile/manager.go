package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNameTaken is returned when a profile with the requested name already exists.
	ErrNameTaken = errors.New("profile name already in use")
	// ErrDirExists is returned when the target directory for a new profile already exists.
	ErrDirExists = errors.New("profile directory already exists")
)

// BaseDirProvider supplies the base directory under which profile home
// directories are created. Implemented by config.Manager.
type BaseDirProvider interface {
	GetBaseDirectory() string
}

// Manager couples profile metadata with the profile home directories on disk.
// It is safe for concurrent use.
type Manager struct {
	store   StoreInterface
	baseDir BaseDirProvider
	mu      sync.Mutex
}

// NewManager creates a new profile manager.
func NewManager(store StoreInterface, baseDir BaseDirProvider) *Manager {
	return &Manager{
		store:   store,
		baseDir: baseDir,
	}
}

// Create makes a new profile: a home directory named after the profile under
// the base directory, plus a metadata entry. The name must be unique and the
// directory must not already exist.
func (m *Manager) Create(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, err := m.findByNameUnsafe(name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrNameTaken, name)
	}

	base := m.baseDir.GetBaseDirectory()
	if base == "" {
		return nil, errors.New("base directory not set")
	}

	dir := filepath.Join(base, name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDirExists, dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check profile directory: %w", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	p := NewProfile(name, dir)
	if err := m.store.Save(p); err != nil {
		// Roll back the directory so a failed save doesn't leave an orphan.
		_ = os.Remove(dir)
		return nil, err
	}

	slog.Info("Created profile", "name", name, "path", dir)
	return p, nil
}

// Delete removes a profile's home directory tree and its metadata.
// A failure to remove the directory is logged but does not keep the
// metadata entry alive.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.store.Load(id)
	if err != nil {
		return err
	}

	if p.Path != "" {
		if err := os.RemoveAll(p.Path); err != nil {
			slog.Warn("Failed to delete profile directory", "path", p.Path, "error", err)
		}
	}

	if err := m.store.Delete(id); err != nil {
		return err
	}

	slog.Info("Deleted profile", "name", p.Name)
	return nil
}

// Rename changes a profile's name and renames its home directory to match.
// The note and identity are carried over. Renaming onto an existing profile
// name is rejected.
func (m *Manager) Rename(id, newName string) (*Profile, error) {
	newName = strings.TrimSpace(newName)
	if err := ValidateName(newName); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.store.Load(id)
	if err != nil {
		return nil, err
	}

	if existing, err := m.findByNameUnsafe(newName); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		return nil, fmt.Errorf("%w: %s", ErrNameTaken, newName)
	}

	newPath := filepath.Join(filepath.Dir(p.Path), newName)

	// Only rename the directory when the old one actually exists; metadata
	// can get ahead of the filesystem if the user removed the dir manually.
	if _, err := os.Stat(p.Path); err == nil {
		if err := os.Rename(p.Path, newPath); err != nil {
			return nil, fmt.Errorf("failed to rename profile directory: %w", err)
		}
	}

	oldName := p.Name
	p.Name = newName
	p.Path = newPath
	if err := m.store.Save(p); err != nil {
		return nil, err
	}

	slog.Info("Renamed profile", "from", oldName, "to", newName)
	return p, nil
}

// SetNote updates the note attached to a profile.
func (m *Manager) SetNote(id, note string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.store.Load(id)
	if err != nil {
		return nil, err
	}

	p.Note = note
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := m.store.Save(p); err != nil {
		return nil, err
	}

	return p, nil
}

// Get retrieves a profile by ID.
func (m *Manager) Get(id string) (*Profile, error) {
	return m.store.Load(id)
}

// List returns all profiles sorted by name, plus any per-file load errors.
func (m *Manager) List() (*ListResult, error) {
	result, err := m.store.List()
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Profiles, func(i, j int) bool {
		return result.Profiles[i].Name < result.Profiles[j].Name
	})

	return result, nil
}

// FindByName returns the profile with the given name, or ErrStoreNotFound.
func (m *Manager) FindByName(name string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.findByNameUnsafe(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrStoreNotFound
	}
	return p, nil
}

// findByNameUnsafe scans the store for a profile with the given name.
// Caller must hold m.mu.
func (m *Manager) findByNameUnsafe(name string) (*Profile, error) {
	result, err := m.store.List()
	if err != nil {
		return nil, err
	}

	for _, p := range result.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

// DirMissing reports whether the profile's home directory is absent on disk.
func (m *Manager) DirMissing(p *Profile) bool {
	if p == nil || p.Path == "" {
		return true
	}
	_, err := os.Stat(p.Path)
	return os.IsNotExist(err)
}
