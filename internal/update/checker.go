// Package update checks whether a newer release is published.
package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultVersionURL is where the latest released version string is published.
const DefaultVersionURL = "https://raw.githubusercontent.com/evanovar/sober-profile-manager/main/version.txt"

const requestTimeout = 5 * time.Second

// Result is the outcome of an update check.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
}

// Checker fetches the published version string and compares it with the
// running version. The URL is overridable for tests.
type Checker struct {
	httpClient *http.Client
	VersionURL string
}

// NewChecker creates an update checker.
func NewChecker() *Checker {
	return &Checker{
		httpClient: &http.Client{Timeout: requestTimeout},
		VersionURL: DefaultVersionURL,
	}
}

// Check fetches the latest published version and compares it with current.
// Any version string that differs from the running one counts as an update,
// matching a plain published version file with no ordering semantics.
func (c *Checker) Check(ctx context.Context, current string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.VersionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from version endpoint", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return nil, fmt.Errorf("failed to read version response: %w", err)
	}

	latest := strings.TrimSpace(string(body))
	if latest == "" {
		return nil, fmt.Errorf("empty version response")
	}

	return &Result{
		CurrentVersion:  current,
		LatestVersion:   latest,
		UpdateAvailable: latest != current,
	}, nil
}
