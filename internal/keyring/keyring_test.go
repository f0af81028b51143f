package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zkeyring "github.com/zalando/go-keyring"
)

func TestSystemKeyring_Save(t *testing.T) {
	zkeyring.MockInit()

	store := NewSystemKeyring()
	profileID := "550e8400-e29b-41d4-a716-446655440000"
	cookie := "_|WARNING:-DO-NOT-SHARE-THIS|_secret"

	err := store.Save(profileID, cookie)
	require.NoError(t, err)

	stored, err := store.Get(profileID)
	require.NoError(t, err)
	assert.Equal(t, cookie, stored)
}

func TestSystemKeyring_Get_NotFound(t *testing.T) {
	zkeyring.MockInit()

	store := NewSystemKeyring()
	// Use a valid UUID that doesn't have a stored cookie
	_, err := store.Get("00000000-0000-0000-0000-000000000000")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyringCookieNotFound)
}

func TestSystemKeyring_Delete(t *testing.T) {
	zkeyring.MockInit()

	store := NewSystemKeyring()
	profileID := "550e8400-e29b-41d4-a716-446655440000"

	err := store.Save(profileID, "to-be-deleted")
	require.NoError(t, err)

	err = store.Delete(profileID)
	require.NoError(t, err)

	_, err = store.Get(profileID)
	assert.ErrorIs(t, err, ErrKeyringCookieNotFound)
}

func TestSystemKeyring_Delete_NotFound(t *testing.T) {
	zkeyring.MockInit()

	store := NewSystemKeyring()
	// Deleting a non-existent cookie should not error (idempotent)
	err := store.Delete("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
}

func TestSystemKeyring_Save_Error(t *testing.T) {
	customErr := errors.New("keyring service unavailable")
	zkeyring.MockInitWithError(customErr)

	store := NewSystemKeyring()
	err := store.Save("550e8400-e29b-41d4-a716-446655440000", "cookie")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store session cookie")
}

func TestSystemKeyring_Get_Error(t *testing.T) {
	customErr := errors.New("keyring service unavailable")
	zkeyring.MockInitWithError(customErr)

	store := NewSystemKeyring()
	_, err := store.Get("550e8400-e29b-41d4-a716-446655440000")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyringCookieNotFound)
}

func TestSystemKeyring_Delete_Error(t *testing.T) {
	customErr := errors.New("keyring service unavailable")
	zkeyring.MockInitWithError(customErr)

	store := NewSystemKeyring()
	err := store.Delete("550e8400-e29b-41d4-a716-446655440000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete session cookie")
}

func TestSystemKeyring_InvalidProfileID(t *testing.T) {
	zkeyring.MockInit()

	store := NewSystemKeyring()

	err := store.Save("invalid-not-a-uuid", "cookie")
	assert.ErrorIs(t, err, ErrKeyringInvalidProfileID)

	_, err = store.Get("invalid-not-a-uuid")
	assert.ErrorIs(t, err, ErrKeyringInvalidProfileID)

	err = store.Delete("")
	assert.ErrorIs(t, err, ErrKeyringInvalidProfileID)
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "sober-profile-manager", ServiceName)
}

func TestSystemKeyring_ImplementsStoreInterface(t *testing.T) {
	var _ Store = (*SystemKeyring)(nil)
}
