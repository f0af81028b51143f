package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCookieJar(t *testing.T, home, content string) {
	t.Helper()

	path := CookiePath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

const validJar = `GuestData=UserID=-1; .ROBLOSECURITY=_|WARNING:-DO-NOT-SHARE-THIS|_token-value; RBXEventTrackerV2=x`

func TestCookiePath(t *testing.T) {
	path := CookiePath("/home/user/homes/main")
	assert.Equal(t, "/home/user/homes/main/.var/app/org.vinegarhq.Sober/data/sober/cookies", path)
}

func TestIsLoggedIn(t *testing.T) {
	t.Run("valid cookie jar", func(t *testing.T) {
		home := t.TempDir()
		writeCookieJar(t, home, validJar)
		assert.True(t, IsLoggedIn(home))
	})

	t.Run("missing jar", func(t *testing.T) {
		assert.False(t, IsLoggedIn(t.TempDir()))
	})

	t.Run("jar without session cookie", func(t *testing.T) {
		home := t.TempDir()
		writeCookieJar(t, home, "GuestData=UserID=-1")
		assert.False(t, IsLoggedIn(home))
	})

	t.Run("session cookie without warning marker", func(t *testing.T) {
		home := t.TempDir()
		writeCookieJar(t, home, ".ROBLOSECURITY=bogus")
		assert.False(t, IsLoggedIn(home))
	})
}

func TestExtractCookie(t *testing.T) {
	t.Run("extracts value", func(t *testing.T) {
		home := t.TempDir()
		writeCookieJar(t, home, validJar)

		cookie, err := ExtractCookie(home)
		require.NoError(t, err)
		assert.Equal(t, "_|WARNING:-DO-NOT-SHARE-THIS|_token-value", cookie)
	})

	t.Run("missing jar", func(t *testing.T) {
		_, err := ExtractCookie(t.TempDir())
		assert.ErrorIs(t, err, ErrNoCookie)
	})

	t.Run("no session cookie in jar", func(t *testing.T) {
		home := t.TempDir()
		writeCookieJar(t, home, "GuestData=UserID=-1; RBXEventTrackerV2=x")

		_, err := ExtractCookie(home)
		assert.ErrorIs(t, err, ErrNoCookie)
	})

	t.Run("empty value", func(t *testing.T) {
		home := t.TempDir()
		writeCookieJar(t, home, ".ROBLOSECURITY=")

		_, err := ExtractCookie(home)
		assert.ErrorIs(t, err, ErrNoCookie)
	})
}
