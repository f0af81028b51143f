// Package roblox implements a client for the public Roblox web APIs used to
// resolve usernames, query presence and fetch game metadata.
package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultUsersBaseURL    = "https://users.roblox.com"
	defaultAuthBaseURL     = "https://auth.roblox.com"
	defaultPresenceBaseURL = "https://presence.roblox.com"
	defaultApisBaseURL     = "https://apis.roblox.com"
	defaultGamesBaseURL    = "https://games.roblox.com"

	// securityCookieName is the Roblox session cookie name.
	securityCookieName = ".ROBLOSECURITY"

	requestTimeout = 5 * time.Second
)

// PresenceInGame is the presence type reported while a user is in a game.
const PresenceInGame = 2

var (
	// ErrUserNotFound is returned when a username does not resolve to any user.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserNotInGame is returned when a user's presence is not in-game.
	ErrUserNotInGame = errors.New("user is not in a game")
	// ErrNoGameInstance is returned when an in-game presence carries no joinable instance.
	ErrNoGameInstance = errors.New("no joinable game instance")
	// ErrUnauthorized is returned when a request is rejected due to an invalid session cookie.
	ErrUnauthorized = errors.New("session cookie rejected")
)

// User is an authenticated Roblox user identity.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Presence describes a user's current presence.
type Presence struct {
	UserPresenceType int    `json:"userPresenceType"`
	PlaceID          int64  `json:"placeId"`
	GameID           string `json:"gameId"`
	UserID           int64  `json:"userId"`
}

// Client talks to the Roblox web APIs. The zero value is not usable; construct
// with NewClient. Base URLs are overridable for tests.
type Client struct {
	httpClient *http.Client

	UsersBaseURL    string
	AuthBaseURL     string
	PresenceBaseURL string
	ApisBaseURL     string
	GamesBaseURL    string
}

// NewClient creates a new Roblox API client with sensible timeouts.
func NewClient() *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: requestTimeout},
		UsersBaseURL:    defaultUsersBaseURL,
		AuthBaseURL:     defaultAuthBaseURL,
		PresenceBaseURL: defaultPresenceBaseURL,
		ApisBaseURL:     defaultApisBaseURL,
		GamesBaseURL:    defaultGamesBaseURL,
	}
}

// ResolveUsername looks up the user ID for a username.
// Returns ErrUserNotFound if the username does not exist.
func (c *Client) ResolveUsername(ctx context.Context, username string) (int64, error) {
	payload := map[string]any{
		"usernames":          []string{username},
		"excludeBannedUsers": true,
	}

	var result struct {
		Data []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}

	err := c.doJSON(ctx, http.MethodPost, c.UsersBaseURL+"/v1/usernames/users", "", "", payload, &result)
	if err != nil {
		return 0, err
	}

	if len(result.Data) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return result.Data[0].ID, nil
}

// AuthenticatedUser returns the identity behind a session cookie.
// Returns ErrUnauthorized if the cookie is invalid or expired.
func (c *Client) AuthenticatedUser(ctx context.Context, cookie string) (*User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodGet, c.UsersBaseURL+"/v1/users/authenticated", cookie, "", nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CSRFToken obtains a CSRF token for cookie-authenticated POST requests.
// Roblox hands the token back on a rejected logout attempt.
func (c *Client) CSRFToken(ctx context.Context, cookie string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthBaseURL+"/v2/logout", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: securityCookieName, Value: cookie})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("csrf token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	token := resp.Header.Get("x-csrf-token")
	if token == "" {
		if resp.StatusCode == http.StatusUnauthorized {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("no csrf token in response (status %d)", resp.StatusCode)
	}
	return token, nil
}

// UserPresence fetches the current presence of a user. The cookie must belong
// to an account that is allowed to see the target's presence.
func (c *Client) UserPresence(ctx context.Context, cookie string, userID int64) (*Presence, error) {
	token, err := c.CSRFToken(ctx, cookie)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"userIds": []int64{userID}}

	var result struct {
		UserPresences []Presence `json:"userPresences"`
	}

	err = c.doJSON(ctx, http.MethodPost, c.PresenceBaseURL+"/v1/presence/users", cookie, token, payload, &result)
	if err != nil {
		return nil, err
	}

	if len(result.UserPresences) == 0 {
		return nil, fmt.Errorf("%w: user %d", ErrUserNotFound, userID)
	}
	return &result.UserPresences[0], nil
}

// PlaceUniverse resolves the universe ID that a place belongs to.
func (c *Client) PlaceUniverse(ctx context.Context, placeID string) (int64, error) {
	var result struct {
		UniverseID int64 `json:"universeId"`
	}

	url := fmt.Sprintf("%s/universes/v1/places/%s/universe", c.ApisBaseURL, placeID)
	if err := c.doJSON(ctx, http.MethodGet, url, "", "", nil, &result); err != nil {
		return 0, err
	}
	if result.UniverseID == 0 {
		return 0, fmt.Errorf("no universe for place %s", placeID)
	}
	return result.UniverseID, nil
}

// GameName fetches the display name of a game by universe ID.
func (c *Client) GameName(ctx context.Context, universeID int64) (string, error) {
	var result struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}

	url := fmt.Sprintf("%s/v1/games?universeIds=%d", c.GamesBaseURL, universeID)
	if err := c.doJSON(ctx, http.MethodGet, url, "", "", nil, &result); err != nil {
		return "", err
	}
	if len(result.Data) == 0 {
		return "", fmt.Errorf("no game data for universe %d", universeID)
	}
	return result.Data[0].Name, nil
}

// doJSON performs an HTTP request with optional cookie auth, CSRF token and
// JSON body, decoding the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, url, cookie, csrfToken string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: securityCookieName, Value: cookie})
	}
	if csrfToken != "" {
		req.Header.Set("x-csrf-token", csrfToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
