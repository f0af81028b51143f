package sober

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/evanovar/sober-profile-manager/internal/config"
	"github.com/evanovar/sober-profile-manager/internal/profile"
	"github.com/evanovar/sober-profile-manager/internal/roblox"
	"github.com/evanovar/sober-profile-manager/internal/session"
)

var (
	// ErrAlreadyRunning is returned when a launch is blocked by an existing
	// instance and multi-instance mode is off.
	ErrAlreadyRunning = errors.New("a Sober instance is already running")
	// ErrProfileDirMissing is returned when a profile's home directory is gone.
	ErrProfileDirMissing = errors.New("profile directory does not exist")
)

// GameClient is the part of the Roblox client the service uses.
type GameClient interface {
	ResolveUsername(ctx context.Context, username string) (int64, error)
	UserPresence(ctx context.Context, cookie string, userID int64) (*roblox.Presence, error)
	PlaceUniverse(ctx context.Context, placeID string) (int64, error)
	GameName(ctx context.Context, universeID int64) (string, error)
}

// CookieSource resolves session cookies for profiles.
type CookieSource interface {
	Cookie(profileID, profileHome string) (string, error)
}

// Service ties the launcher, instance detection and the Roblox APIs together
// into the operations the UI and CLI expose.
type Service struct {
	launcher *Launcher
	detector *Detector
	client   GameClient
	sessions CookieSource
	cfg      *config.Manager

	// Post-launch confirmation poll parameters. Zero values fall back to
	// the detector defaults.
	confirmRetries int
	confirmBackoff time.Duration
}

// NewService creates the orchestration service.
func NewService(launcher *Launcher, detector *Detector, client GameClient, sessions CookieSource, cfg *config.Manager) *Service {
	return &Service{
		launcher: launcher,
		detector: detector,
		client:   client,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Launcher returns the underlying launcher, for state queries and callbacks.
func (s *Service) Launcher() *Launcher {
	return s.launcher
}

// Detector returns the underlying instance detector.
func (s *Service) Detector() *Detector {
	return s.detector
}

// LaunchProfile starts a Sober instance for the profile, optionally with a
// deep link URI. Unless multi-instance mode is enabled, a launch is refused
// while any Sober instance is running.
func (s *Service) LaunchProfile(ctx context.Context, p *profile.Profile, uri string) error {
	if _, err := os.Stat(p.Path); err != nil {
		return fmt.Errorf("%w: %s", ErrProfileDirMissing, p.Path)
	}

	if !s.cfg.GetConfig().MultiInstance && s.detector.AnyInstanceRunning(ctx) {
		return ErrAlreadyRunning
	}

	if err := s.launcher.Launch(ctx, p.ID, p.Path, uri); err != nil {
		return err
	}

	if err := s.cfg.UpdateField(func(c *config.Config) {
		c.LastProfileID = p.ID
	}); err != nil {
		slog.Warn("Failed to remember last launched profile", "error", err)
	}

	go s.confirmLaunch(ctx, p)
	return nil
}

// confirmLaunch polls until the launched instance shows up on the system.
// An instance that never appears is reported through the launcher's error
// callback so the UI can surface it.
func (s *Service) confirmLaunch(ctx context.Context, p *profile.Profile) {
	err := s.detector.WaitForInstance(ctx, p.Path, s.confirmRetries, s.confirmBackoff)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	slog.Warn("Launched instance did not show up", "profile", p.ID, "error", err)
	s.launcher.emitError(p.ID, fmt.Errorf("no Sober instance showed up for profile %q after launch", p.Name))
}

// LaunchPlace starts an instance and joins a place. The place may be given
// as a typed ID, a pasted URL, or both, which must agree. A private server
// link code switches to the private server deep link. The last used place
// and code are remembered for the next launch.
func (s *Service) LaunchPlace(ctx context.Context, p *profile.Profile, typedID, url, linkCode string) error {
	placeID, err := roblox.ResolvePlaceID(typedID, url)
	if err != nil {
		return err
	}

	code, err := roblox.ExtractLinkCode(linkCode)
	if err != nil {
		return err
	}

	var uri string
	if code != "" {
		uri = roblox.PrivateServerURI(placeID, code)
	} else {
		uri = roblox.PlaceURI(placeID)
	}

	if err := s.LaunchProfile(ctx, p, uri); err != nil {
		return err
	}

	if err := s.cfg.UpdateField(func(c *config.Config) {
		c.LastPlaceID = placeID
		c.LastPrivateServerCode = code
	}); err != nil {
		slog.Warn("Failed to remember last place", "error", err)
	}
	return nil
}

// JoinUser starts an instance that joins the game another user is currently
// in. The host profile's session cookie is used to look up the target's
// presence, so the host account must be allowed to see it. A non-empty
// linkCode joins through the private server instead of the public instance,
// which also works when the target's server id is hidden.
func (s *Service) JoinUser(ctx context.Context, p *profile.Profile, username, linkCode string) error {
	cookie, err := s.sessions.Cookie(p.ID, p.Path)
	if err != nil {
		if errors.Is(err, session.ErrNoCookie) {
			return fmt.Errorf("profile %q has no logged-in account: %w", p.Name, err)
		}
		return err
	}

	userID, err := s.client.ResolveUsername(ctx, username)
	if err != nil {
		return err
	}

	presence, err := s.client.UserPresence(ctx, cookie, userID)
	if err != nil {
		return err
	}

	if presence.UserPresenceType != roblox.PresenceInGame || presence.PlaceID == 0 {
		return fmt.Errorf("%w: %s", roblox.ErrUserNotInGame, username)
	}

	placeID := fmt.Sprintf("%d", presence.PlaceID)

	var uri string
	switch {
	case linkCode != "":
		uri = roblox.PrivateServerURI(placeID, linkCode)
	case presence.GameID == "":
		return fmt.Errorf("%w: %s is in a game but its server is hidden; pass a private server link code to join", roblox.ErrNoGameInstance, username)
	default:
		uri = roblox.InstanceURI(placeID, presence.GameID)
	}

	return s.LaunchProfile(ctx, p, uri)
}

// KillProfile stops the profile's instance. When no tracked instance remains
// afterwards, `flatpak kill` is run as a backstop so instances spawned by an
// earlier manager run are caught too.
func (s *Service) KillProfile(ctx context.Context, p *profile.Profile) error {
	err := s.launcher.Kill(p.ID)
	if err != nil && !errors.Is(err, ErrNotTracked) {
		return err
	}

	if len(s.launcher.RunningProfiles()) == 0 {
		if killErr := s.detector.KillAllInstances(ctx); killErr != nil {
			slog.Debug("flatpak kill backstop failed", "error", killErr)
		}
	}
	return nil
}

// KillAll stops every tracked instance and runs the flatpak backstop.
func (s *Service) KillAll(ctx context.Context) error {
	err := s.launcher.KillAll()
	if killErr := s.detector.KillAllInstances(ctx); killErr != nil {
		slog.Debug("flatpak kill backstop failed", "error", killErr)
	}
	return err
}

// IsProfileRunning reports whether the profile has a live instance, tracked
// or detected on the system.
func (s *Service) IsProfileRunning(ctx context.Context, p *profile.Profile) bool {
	if s.launcher.State(p.ID).IsRunning() {
		return true
	}
	return s.detector.IsProfileRunning(ctx, p.Path)
}

// FavoriteName resolves a display name for a favorite entry. Private server
// favorites get a marker suffix. Lookup failures fall back to a generic name
// so a favorite can always be saved.
func (s *Service) FavoriteName(ctx context.Context, placeID string, private bool) string {
	name := s.lookupPlaceName(ctx, placeID)
	if name == "" {
		name = "Place " + placeID
	}
	if private {
		name += " (Private)"
	}
	return name
}

func (s *Service) lookupPlaceName(ctx context.Context, placeID string) string {
	universeID, err := s.client.PlaceUniverse(ctx, placeID)
	if err != nil {
		slog.Debug("Failed to resolve universe for place", "place", placeID, "error", err)
		return ""
	}
	name, err := s.client.GameName(ctx, universeID)
	if err != nil {
		slog.Debug("Failed to fetch game name", "universe", universeID, "error", err)
		return ""
	}
	return name
}
