package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	return store
}

func validTestProfile() *Profile {
	return &Profile{
		ID:   "550e8400-e29b-41d4-a716-446655440000",
		Name: "main",
		Path: "/home/user/homes/main",
		Note: "primary account",
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	storeDir := filepath.Join(dir, "profiles")
	store, err := NewStore(storeDir)

	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.DirExists(t, storeDir)
}

func TestStore_Save(t *testing.T) {
	store := setupTestStore(t)

	p := validTestProfile()
	err := store.Save(p)

	require.NoError(t, err)
	path, err := store.profilePath(p.ID)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestStore_Save_InvalidID(t *testing.T) {
	store := setupTestStore(t)

	// Missing ID
	p := &Profile{
		Name: "main",
		Path: "/home/user/homes/main",
	}
	err := store.Save(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile ID is required")

	// Invalid ID format
	p.ID = "not-a-uuid"
	err = store.Save(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile ID format")
}

func TestStore_Load(t *testing.T) {
	store := setupTestStore(t)

	original := validTestProfile()
	require.NoError(t, store.Save(original))

	loaded, err := store.Load(original.ID)

	require.NoError(t, err)
	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Path, loaded.Path)
	assert.Equal(t, original.Note, loaded.Note)
}

func TestStore_Load_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Load("00000000-0000-0000-0000-000000000000")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStore_Load_InvalidID(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Load("invalid-id-format")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreInvalidID)
}

func TestStore_Delete(t *testing.T) {
	store := setupTestStore(t)

	p := validTestProfile()
	require.NoError(t, store.Save(p))
	path, err := store.profilePath(p.ID)
	require.NoError(t, err)
	require.FileExists(t, path)

	err = store.Delete(p.ID)

	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestStore_Delete_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.Delete("00000000-0000-0000-0000-000000000000")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStore_List(t *testing.T) {
	store := setupTestStore(t)

	p1 := validTestProfile()
	p2 := validTestProfile()
	p2.ID = "660e8400-e29b-41d4-a716-446655440001"
	p2.Name = "alt"

	require.NoError(t, store.Save(p1))
	require.NoError(t, store.Save(p2))

	result, err := store.List()

	require.NoError(t, err)
	assert.Len(t, result.Profiles, 2)
	assert.Empty(t, result.Errors)
}

func TestStore_List_Empty(t *testing.T) {
	store := setupTestStore(t)

	result, err := store.List()

	require.NoError(t, err)
	assert.Empty(t, result.Profiles)
	assert.Empty(t, result.Errors)
}

func TestStore_Exists(t *testing.T) {
	store := setupTestStore(t)

	p := validTestProfile()
	require.NoError(t, store.Save(p))

	exists, err := store.Exists(p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_List_WithCorruptedProfile(t *testing.T) {
	store := setupTestStore(t)

	p := validTestProfile()
	require.NoError(t, store.Save(p))

	corruptedID := "660e8400-e29b-41d4-a716-446655440001"
	corruptedPath := filepath.Join(store.baseDir, corruptedID+".json")
	err := os.WriteFile(corruptedPath, []byte("invalid json {{{"), 0600)
	require.NoError(t, err)

	result, err := store.List()

	require.NoError(t, err)
	assert.Len(t, result.Profiles, 1)
	assert.Equal(t, p.ID, result.Profiles[0].ID)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, corruptedID, result.Errors[0].ProfileID)
	assert.Contains(t, result.Errors[0].Err.Error(), "failed to load profile")
}

func TestStore_List_WithInvalidUUIDFilename(t *testing.T) {
	store := setupTestStore(t)

	p := validTestProfile()
	require.NoError(t, store.Save(p))

	invalidPath := filepath.Join(store.baseDir, "not-a-uuid.json")
	err := os.WriteFile(invalidPath, []byte(`{"id":"test"}`), 0600)
	require.NoError(t, err)

	result, err := store.List()

	require.NoError(t, err)
	assert.Len(t, result.Profiles, 1)
	assert.Equal(t, p.ID, result.Profiles[0].ID)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "not-a-uuid", result.Errors[0].ProfileID)
	assert.Contains(t, result.Errors[0].Err.Error(), "invalid profile ID")
}

func TestListError_Error(t *testing.T) {
	err := ListError{
		ProfileID: "550e8400-e29b-41d4-a716-446655440000",
		Err:       fmt.Errorf("test error"),
	}

	errStr := err.Error()
	assert.Contains(t, errStr, "550e8400-e29b-41d4-a716-446655440000")
	assert.Contains(t, errStr, "test error")
}

func TestListError_Unwrap(t *testing.T) {
	underlyingErr := fmt.Errorf("underlying error")
	listErr := ListError{
		ProfileID: "550e8400-e29b-41d4-a716-446655440000",
		Err:       underlyingErr,
	}

	assert.Equal(t, underlyingErr, listErr.Unwrap())

	wrappedErr := fmt.Errorf("wrapped: %w", underlyingErr)
	listErrWithWrapped := ListError{
		ProfileID: "test-id",
		Err:       wrappedErr,
	}
	assert.ErrorIs(t, listErrWithWrapped, underlyingErr)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := setupTestStore(t)

	var wg sync.WaitGroup
	const numGoroutines = 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p := NewProfile(fmt.Sprintf("profile-%d", n), fmt.Sprintf("/tmp/homes/profile-%d", n))
			err := store.Save(p)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	result, err := store.List()
	require.NoError(t, err)
	assert.Len(t, result.Profiles, numGoroutines)
	assert.Empty(t, result.Errors)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.List()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
