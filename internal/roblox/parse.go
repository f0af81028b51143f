package roblox

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoPlaceID is returned when no place ID can be extracted from the input.
	ErrNoPlaceID = errors.New("no place ID found in input")
	// ErrPlaceMismatch is returned when a typed place ID disagrees with the one in a pasted URL.
	ErrPlaceMismatch = errors.New("place ID does not match the one in the URL")
)

var (
	gamesPathRe  = regexp.MustCompile(`games/(\d+)`)
	placeParamRe = regexp.MustCompile(`placeId=(\d+)`)
	linkCodeRe   = regexp.MustCompile(`privateServerLinkCode=([^&\s]+)`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
)

// ExtractPlaceID pulls a place ID out of free-form input: a game page URL, a
// deep link, or a bare numeric ID.
func ExtractPlaceID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoPlaceID
	}

	if m := gamesPathRe.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if m := placeParamRe.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if digitsOnlyRe.MatchString(input) {
		return input, nil
	}

	return "", fmt.Errorf("%w: %q", ErrNoPlaceID, input)
}

// ExtractLinkCode pulls a private server link code out of free-form input: a
// share URL or a bare code. Codes are opaque strings, so anything that does
// not look like a URL passes through as-is. An empty input yields an empty
// code.
func ExtractLinkCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	if m := linkCodeRe.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if strings.ContainsAny(input, "/?&") {
		return "", fmt.Errorf("no private server link code found in input: %q", input)
	}

	return input, nil
}

// ResolvePlaceID reconciles place input from two slots: a typed value and a
// pasted URL. Either slot accepts a bare ID, a game page URL, or a deep
// link. When both slots yield an ID they must agree. An empty typed slot
// falls back to the URL.
func ResolvePlaceID(typed, url string) (string, error) {
	typed = strings.TrimSpace(typed)
	url = strings.TrimSpace(url)

	var fromURL string
	if url != "" {
		id, err := ExtractPlaceID(url)
		if err != nil {
			return "", err
		}
		fromURL = id
	}

	var fromTyped string
	if typed != "" {
		id, err := ExtractPlaceID(typed)
		if err != nil {
			return "", err
		}
		fromTyped = id
	}

	switch {
	case fromTyped == "" && fromURL == "":
		return "", ErrNoPlaceID
	case fromTyped == "":
		return fromURL, nil
	case fromURL != "" && fromTyped != fromURL:
		return "", fmt.Errorf("%w: typed %s, URL has %s", ErrPlaceMismatch, fromTyped, fromURL)
	default:
		return fromTyped, nil
	}
}
