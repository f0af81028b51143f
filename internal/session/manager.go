package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/evanovar/sober-profile-manager/internal/keyring"
	"github.com/evanovar/sober-profile-manager/internal/roblox"
)

// Identity is the Roblox account currently tied to a profile.
type Identity struct {
	UserID      int64
	Username    string
	DisplayName string
}

// UserLookup is the part of the Roblox client the session manager needs.
type UserLookup interface {
	AuthenticatedUser(ctx context.Context, cookie string) (*roblox.User, error)
}

// Manager resolves session cookies for profiles. The cookie jar on disk is
// authoritative; the keyring holds a mirror so the account association
// survives a deleted or recreated profile directory.
type Manager struct {
	keyring keyring.Store
	client  UserLookup
}

// NewManager creates a session manager.
func NewManager(kr keyring.Store, client UserLookup) *Manager {
	return &Manager{keyring: kr, client: client}
}

// Cookie returns the session cookie for a profile, preferring the cookie jar
// in the profile home and falling back to the keyring mirror. A cookie read
// from disk is mirrored into the keyring.
func (m *Manager) Cookie(profileID, profileHome string) (string, error) {
	cookie, err := ExtractCookie(profileHome)
	if err == nil {
		if saveErr := m.keyring.Save(profileID, cookie); saveErr != nil {
			slog.Debug("Failed to mirror session cookie to keyring", "error", saveErr)
		}
		return cookie, nil
	}
	if !errors.Is(err, ErrNoCookie) {
		return "", err
	}

	cookie, err = m.keyring.Get(profileID)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyringCookieNotFound) {
			return "", ErrNoCookie
		}
		return "", err
	}
	return cookie, nil
}

// Identity resolves the Roblox account behind a profile's session cookie.
func (m *Manager) Identity(ctx context.Context, profileID, profileHome string) (*Identity, error) {
	cookie, err := m.Cookie(profileID, profileHome)
	if err != nil {
		return nil, err
	}

	user, err := m.client.AuthenticatedUser(ctx, cookie)
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID:      user.ID,
		Username:    user.Name,
		DisplayName: user.DisplayName,
	}, nil
}

// LoggedIn reports whether any session is available for the profile, on disk
// or mirrored in the keyring.
func (m *Manager) LoggedIn(profileID, profileHome string) bool {
	if IsLoggedIn(profileHome) {
		return true
	}
	_, err := m.keyring.Get(profileID)
	return err == nil
}

// Forget drops the keyring mirror for a profile. Called when a profile is
// deleted.
func (m *Manager) Forget(profileID string) error {
	return m.keyring.Delete(profileID)
}
