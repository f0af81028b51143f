// Package config manages application-level configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/evanovar/sober-profile-manager/internal/fileutil"
)

const (
	// AppName is the application identifier used for XDG paths.
	AppName = "sober-profile-manager"
	// ConfigFileName is the name of the main configuration file.
	ConfigFileName = "config.json"
	// ProfilesDirName is the name of the directory containing profile metadata files.
	ProfilesDirName = "profiles"
	// DefaultBaseDirName is the directory under XDG data home that holds
	// profile home directories when no base directory is configured.
	DefaultBaseDirName = "homes"
)

// Favorite is a bookmarked game, optionally bound to a private server code.
type Favorite struct {
	Name              string `json:"name"`
	PlaceID           string `json:"place_id"`
	PrivateServerCode string `json:"private_server_code,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	// BaseDirectory is where profile home directories are created.
	BaseDirectory string `json:"base_directory"`
	// MultiInstance allows launching several Sober instances simultaneously.
	MultiInstance bool `json:"multi_instance"`
	// AutoRefresh periodically refreshes profile status in the UI.
	AutoRefresh bool `json:"auto_refresh"`
	// ConfirmDelete asks for confirmation before deleting profiles.
	ConfirmDelete bool `json:"confirm_delete"`
	// ShowPaths displays full profile paths in the profile list.
	ShowPaths bool `json:"show_paths"`
	// LaunchNotifications shows a desktop notification on launch.
	LaunchNotifications bool `json:"launch_notifications"`

	// Last-used values, restored into the launch dialogs.
	LastProfileID         string `json:"last_profile_id,omitempty"`
	LastPlaceID           string `json:"last_place_id,omitempty"`
	LastPrivateServerCode string `json:"last_private_server_code,omitempty"`

	// Favorites are bookmarked games shown in the launch dialog.
	Favorites []Favorite `json:"favorite_games"`
}

// DefaultConfig returns a configuration with sensible defaults.
// BaseDirectory is left empty here; the Manager resolves it against
// the XDG data directory on first load.
func DefaultConfig() *Config {
	return &Config{
		AutoRefresh:         true,
		ConfirmDelete:       true,
		LaunchNotifications: true,
	}
}

// Paths holds the resolved configuration directories.
type Paths struct {
	ConfigDir   string
	ProfilesDir string
	ConfigFile  string
	DataDir     string
}

// GetPaths returns the configuration paths following XDG Base Directory spec.
func GetPaths() (*Paths, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	dataHome := os.Getenv("XDG_DATA_HOME")
	if configHome == "" || dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		if configHome == "" {
			configHome = filepath.Join(homeDir, ".config")
		}
		if dataHome == "" {
			dataHome = filepath.Join(homeDir, ".local", "share")
		}
	}

	configDir := filepath.Join(configHome, AppName)
	return &Paths{
		ConfigDir:   configDir,
		ProfilesDir: filepath.Join(configDir, ProfilesDirName),
		ConfigFile:  filepath.Join(configDir, ConfigFileName),
		DataDir:     filepath.Join(dataHome, AppName),
	}, nil
}

// EnsurePaths creates all necessary configuration directories.
func (p *Paths) EnsurePaths() error {
	if err := os.MkdirAll(p.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(p.ProfilesDir, 0700); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	if err := os.MkdirAll(p.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// DefaultBaseDirectory returns the base directory used when none is configured.
func (p *Paths) DefaultBaseDirectory() string {
	return filepath.Join(p.DataDir, DefaultBaseDirName)
}

// Load reads the configuration from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk atomically.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fileutil.AtomicWrite(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseDirectory) == "" {
		return fmt.Errorf("base directory must not be empty")
	}
	if !filepath.IsAbs(c.BaseDirectory) {
		return fmt.Errorf("base directory must be an absolute path")
	}
	for _, f := range c.Favorites {
		if strings.TrimSpace(f.PlaceID) == "" {
			return fmt.Errorf("favorite %q has no place ID", f.Name)
		}
	}
	return nil
}

// FindFavorite returns the favorite matching the (place ID, private server
// code) pair, or nil if none exists.
func (c *Config) FindFavorite(placeID, privateServerCode string) *Favorite {
	for i := range c.Favorites {
		f := &c.Favorites[i]
		if f.PlaceID == placeID && f.PrivateServerCode == privateServerCode {
			return f
		}
	}
	return nil
}

// Manager provides high-level configuration management.
// It is safe for concurrent use from multiple goroutines.
type Manager struct {
	paths  *Paths       // Immutable after construction
	config *Config      // Protected by mu
	mu     sync.RWMutex // Protects config only
}

// NewManager creates a new configuration manager.
// It ensures all necessary directories exist, loads the configuration and
// backfills the base directory with the XDG data default when unset.
func NewManager() (*Manager, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	if err := paths.EnsurePaths(); err != nil {
		return nil, fmt.Errorf("failed to create config directories: %w", err)
	}

	cfg, err := Load(paths.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.BaseDirectory == "" {
		cfg.BaseDirectory = paths.DefaultBaseDirectory()
		if err := os.MkdirAll(cfg.BaseDirectory, 0700); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
		if err := Save(paths.ConfigFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to persist base directory: %w", err)
		}
	}

	return &Manager{
		paths:  paths,
		config: cfg,
	}, nil
}

// GetConfig returns a copy of the current configuration.
// The returned copy is safe to read without holding locks.
func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.config
	cfg.Favorites = append([]Favorite(nil), m.config.Favorites...)
	return &cfg
}

// GetProfilesPath returns the path to the profile metadata directory.
func (m *Manager) GetProfilesPath() string {
	return m.paths.ProfilesDir
}

// GetConfigDir returns the path to the configuration directory.
func (m *Manager) GetConfigDir() string {
	return m.paths.ConfigDir
}

// GetBaseDirectory returns the current base directory for profile homes.
func (m *Manager) GetBaseDirectory() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.BaseDirectory
}

// SaveConfig saves the current configuration to disk.
func (m *Manager) SaveConfig() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Save(m.paths.ConfigFile, m.config)
}

// UpdateConfig updates the configuration with a new value and saves it.
func (m *Manager) UpdateConfig(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = cfg
	// Save directly without calling SaveConfig to avoid lock reentry
	return Save(m.paths.ConfigFile, m.config)
}

// UpdateField atomically updates a single config field using a mutator function.
// This avoids read-modify-write race conditions by holding the lock during the
// entire operation. If validation fails, the original config is preserved.
func (m *Manager) UpdateField(mutator func(cfg *Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	configCopy := *m.config
	configCopy.Favorites = append([]Favorite(nil), m.config.Favorites...)
	mutator(&configCopy)
	if err := configCopy.Validate(); err != nil {
		return err
	}

	*m.config = configCopy
	return Save(m.paths.ConfigFile, m.config)
}

// AddFavorite appends a favorite unless one with the same place ID and
// private server code already exists.
func (m *Manager) AddFavorite(f Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing := m.config.FindFavorite(f.PlaceID, f.PrivateServerCode); existing != nil {
		return fmt.Errorf("favorite for place %s already exists", f.PlaceID)
	}

	m.config.Favorites = append(m.config.Favorites, f)
	return Save(m.paths.ConfigFile, m.config)
}

// RemoveFavorite deletes all favorites with the given name.
func (m *Manager) RemoveFavorite(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.config.Favorites[:0]
	for _, f := range m.config.Favorites {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	m.config.Favorites = kept
	return Save(m.paths.ConfigFile, m.config)
}
