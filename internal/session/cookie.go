// Package session reads Roblox session cookies out of Sober's sandboxed data
// directory and keeps a copy in the system keyring so accounts survive a
// wiped profile directory.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// cookieRelPath is where the Sober flatpak keeps its cookie jar, relative to
// the profile's home directory.
var cookieRelPath = filepath.Join(".var", "app", "org.vinegarhq.Sober", "data", "sober", "cookies")

const (
	securityCookiePrefix = ".ROBLOSECURITY="
	cookieWarningMarker  = "WARNING:-DO-NOT-SHARE-THIS"
)

// ErrNoCookie is returned when a profile has no stored session cookie.
var ErrNoCookie = errors.New("no session cookie found")

// CookiePath returns the path of the Sober cookie jar inside a profile home.
func CookiePath(profileHome string) string {
	return filepath.Join(profileHome, cookieRelPath)
}

// IsLoggedIn reports whether a profile home contains a plausible Roblox
// session. It only probes for the cookie's markers, it does not verify the
// session against the API.
func IsLoggedIn(profileHome string) bool {
	content, err := os.ReadFile(CookiePath(profileHome))
	if err != nil {
		return false
	}
	s := string(content)
	return strings.Contains(s, securityCookiePrefix) && strings.Contains(s, cookieWarningMarker)
}

// ExtractCookie reads the .ROBLOSECURITY value from a profile's cookie jar.
// Returns ErrNoCookie when the jar is missing or holds no session cookie.
func ExtractCookie(profileHome string) (string, error) {
	content, err := os.ReadFile(CookiePath(profileHome))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCookie
		}
		return "", fmt.Errorf("failed to read cookie file: %w", err)
	}

	for _, part := range strings.Split(string(content), ";") {
		if idx := strings.Index(part, securityCookiePrefix); idx >= 0 {
			value := strings.TrimSpace(part[idx+len(securityCookiePrefix):])
			if value == "" {
				return "", ErrNoCookie
			}
			return value, nil
		}
	}

	return "", ErrNoCookie
}
