// Package keyring provides secure session cookie storage using the system keyring.
package keyring

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	zkeyring "github.com/zalando/go-keyring"
)

// ServiceName is the identifier used for storing session cookies in the system keyring.
const ServiceName = "sober-profile-manager"

var (
	// ErrKeyringCookieNotFound is returned when a session cookie does not exist in the keyring.
	ErrKeyringCookieNotFound = errors.New("session cookie not found")
	// ErrKeyringInvalidProfileID is returned when a profile ID is not a valid UUID.
	ErrKeyringInvalidProfileID = errors.New("invalid profile ID: must be a valid UUID")
)

// Store defines the interface for session cookie storage operations.
type Store interface {
	// Save stores a session cookie for the given profile ID.
	Save(profileID, cookie string) error
	// Get retrieves the session cookie for the given profile ID.
	Get(profileID string) (string, error)
	// Delete removes the session cookie for the given profile ID.
	Delete(profileID string) error
}

// SystemKeyring implements Store using the system keyring.
type SystemKeyring struct{}

// NewSystemKeyring creates a new SystemKeyring instance.
func NewSystemKeyring() *SystemKeyring {
	return &SystemKeyring{}
}

// Save stores a session cookie for the given profile ID in the system keyring.
// The profileID must be a valid UUID.
func (s *SystemKeyring) Save(profileID, cookie string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	err := zkeyring.Set(ServiceName, profileID, cookie)
	if err != nil {
		return fmt.Errorf("failed to store session cookie: %w", err)
	}
	return nil
}

// Get retrieves the session cookie for the given profile ID from the system keyring.
// The profileID must be a valid UUID.
// Returns ErrKeyringCookieNotFound if no cookie exists for the profile.
func (s *SystemKeyring) Get(profileID string) (string, error) {
	if err := validateProfileID(profileID); err != nil {
		return "", err
	}
	cookie, err := zkeyring.Get(ServiceName, profileID)
	if err != nil {
		if errors.Is(err, zkeyring.ErrNotFound) {
			return "", ErrKeyringCookieNotFound
		}
		return "", fmt.Errorf("failed to retrieve session cookie: %w", err)
	}
	return cookie, nil
}

// Delete removes the session cookie for the given profile ID from the system keyring.
// The profileID must be a valid UUID.
// This operation is idempotent - it does not return an error if the cookie doesn't exist.
func (s *SystemKeyring) Delete(profileID string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	err := zkeyring.Delete(ServiceName, profileID)
	if err != nil {
		if errors.Is(err, zkeyring.ErrNotFound) {
			// Idempotent - not finding the cookie is not an error
			return nil
		}
		return fmt.Errorf("failed to delete session cookie: %w", err)
	}
	return nil
}

// validateProfileID ensures the profile ID is a valid UUID.
// This maintains consistency with the profile store's security model.
func validateProfileID(profileID string) error {
	if _, err := uuid.Parse(profileID); err != nil {
		return ErrKeyringInvalidProfileID
	}
	return nil
}
