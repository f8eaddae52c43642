package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelshare/internal/domain"
)

func TestAuthenticated(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var nilSession *Session
	assert.False(t, nilSession.Authenticated(now))
	assert.Empty(t, nilSession.BearerHeader())

	assert.False(t, (&Session{}).Authenticated(now))
	assert.True(t, (&Session{Token: "t"}).Authenticated(now))
	assert.True(t, (&Session{Token: "t", ExpiresAt: now.Add(time.Minute)}).Authenticated(now))
	assert.False(t, (&Session{Token: "t", ExpiresAt: now}).Authenticated(now))
	assert.Equal(t, "Bearer t", (&Session{Token: "t"}).BearerHeader())
}

func TestStoreLifecycle(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(PathBeside(filepath.Join(dir, "config.toml")))

	empty, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.Token)

	expires := time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC)
	sess := &Session{
		Token:     "abc.def.ghi",
		User:      domain.PublicUser{ID: "u1", Username: "ana", Email: "ana@example.com"},
		ExpiresAt: expires,
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess.Token, loaded.Token)
	assert.Equal(t, sess.User, loaded.User)
	assert.True(t, expires.Equal(loaded.ExpiresAt))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cleared.Token)
}
