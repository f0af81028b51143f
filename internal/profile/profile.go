// Package profile provides Sober profile management functionality.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Maximum lengths for text fields to prevent UI issues.
	maxNameLength = 100
	maxNoteLength = 500
)

// Profile represents a named, isolated home directory for a Sober instance.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Path is the absolute path of the profile's home directory.
	Path string `json:"path"`
	// Note is a free-form annotation shown in the profile list.
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfile creates a new profile with a generated UUID.
func NewProfile(name, path string) *Profile {
	return &Profile{
		ID:        uuid.New().String(),
		Name:      name,
		Path:      path,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks if the profile is valid.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return errors.New("profile ID is required")
	}

	if _, err := uuid.Parse(p.ID); err != nil {
		return fmt.Errorf("invalid profile ID format: %w", err)
	}

	if err := ValidateName(p.Name); err != nil {
		return err
	}

	if p.Note != "" {
		if err := validateTextInput(p.Note, "note", maxNoteLength); err != nil {
			return err
		}
	}

	if strings.TrimSpace(p.Path) == "" {
		return errors.New("profile path is required")
	}

	return nil
}

// ValidateName checks that a profile name is non-empty, within length limits
// and usable as a single directory name. The name becomes a path component
// under the base directory, so separators and dot entries are rejected.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("profile name is required")
	}
	if err := validateTextInput(name, "name", maxNameLength); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.New("profile name must not contain path separators")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid profile name %q", name)
	}
	return nil
}

// validateTextInput validates a text field for control characters and length.
// This prevents GTK rendering issues with malicious input and ensures
// reasonable field lengths.
func validateTextInput(value, fieldName string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%s is too long (max %d characters)", fieldName, maxLength)
	}

	for i, r := range value {
		// Reject control characters (ASCII 0-31 and 127)
		if r < 32 || r == 127 {
			return fmt.Errorf("%s contains invalid control character at position %d", fieldName, i)
		}
	}

	return nil
}
