package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoppin-app/hoppin-go/internal/domain"
	"github.com/hoppin-app/hoppin-go/internal/session"
)

func tempStorage(t *testing.T) (*session.Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hoppin", "session.json")
	return session.NewStorage(path), path
}

func TestStorage_Load_AbsentFile(t *testing.T) {
	storage, _ := tempStorage(t)

	assert.Nil(t, storage.Load())
}

func TestStorage_Load_CorruptFile(t *testing.T) {
	storage, path := tempStorage(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	assert.Nil(t, storage.Load())
}

// A stored record without a token violates the all-or-nothing session
// invariant and must be treated as no session.
func TestStorage_Load_MissingToken(t *testing.T) {
	storage, path := tempStorage(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"U1","email":"a@b.com"}`), 0o600))

	assert.Nil(t, storage.Load())
}

func TestStorage_SaveAndLoad(t *testing.T) {
	storage, _ := tempStorage(t)
	user := domain.User{ID: "U1", Email: "a@b.com", FirstName: "Ada", Token: "tok-1"}

	require.NoError(t, storage.Save(user))

	got := storage.Load()
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
}

func TestStorage_Clear_Idempotent(t *testing.T) {
	storage, _ := tempStorage(t)
	require.NoError(t, storage.Save(domain.User{ID: "U1", Token: "tok"}))

	require.NoError(t, storage.Clear())
	assert.Nil(t, storage.Load())
	// Clearing again must not fail.
	require.NoError(t, storage.Clear())
}
