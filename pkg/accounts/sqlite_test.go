package accounts_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-go/authkit/pkg/accounts"
)

func newStore(t *testing.T, path string) *accounts.SQLiteStore {
	t.Helper()
	store, err := accounts.NewSQLiteStore(path, "test-secret-for-sealing")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSQLiteStore(t *testing.T) {
	t.Parallel()

	t.Run("requires secret", func(t *testing.T) {
		t.Parallel()
		store, err := accounts.NewSQLiteStore(filepath.Join(t.TempDir(), "a.db"), "")
		require.ErrorIs(t, err, accounts.ErrNoSecret)
		require.Nil(t, store)
	})

	t.Run("creates database", func(t *testing.T) {
		t.Parallel()
		store := newStore(t, filepath.Join(t.TempDir(), "a.db"))
		require.NotNil(t, store)
	})
}

func TestSQLiteStore_SaveList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t, filepath.Join(t.TempDir(), "a.db"))

	acc := accounts.New("alice", map[string]string{
		"oauth_token":           "T2",
		"oauth_token_secret":    "S2",
		"oauth_consumer_secret": "cs",
	})
	require.NoError(t, store.Save(ctx, "twitter", acc))

	t.Run("round trips account", func(t *testing.T) {
		got, err := store.List(ctx, "twitter")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "alice", got[0].Username)
		assert.Equal(t, "T2", got[0].Property("oauth_token"))
		assert.Equal(t, "cs", got[0].Property("oauth_consumer_secret"))
	})

	t.Run("save replaces existing account", func(t *testing.T) {
		updated := accounts.New("alice", map[string]string{"oauth_token": "T3"})
		require.NoError(t, store.Save(ctx, "twitter", updated))

		got, err := store.List(ctx, "twitter")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "T3", got[0].Property("oauth_token"))
	})

	t.Run("services are isolated", func(t *testing.T) {
		got, err := store.List(ctx, "flickr")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects empty service id", func(t *testing.T) {
		require.ErrorIs(t, store.Save(ctx, "", acc), accounts.ErrMissingServiceID)
		_, err := store.List(ctx, "")
		require.ErrorIs(t, err, accounts.ErrMissingServiceID)
	})

	t.Run("rejects nil account", func(t *testing.T) {
		require.ErrorIs(t, store.Save(ctx, "twitter", nil), accounts.ErrNilAccount)
	})
}

func TestSQLiteStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t, filepath.Join(t.TempDir(), "a.db"))

	require.NoError(t, store.Save(ctx, "svc", accounts.New("bob", nil)))
	require.NoError(t, store.Delete(ctx, "svc", "bob"))

	got, err := store.List(ctx, "svc")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.ErrorIs(t, store.Delete(ctx, "svc", "bob"), accounts.ErrNotFound)
}

func TestSQLiteStore_EncryptedAtRest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.db")

	store, err := accounts.NewSQLiteStore(path, "secret-one")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "svc", accounts.New("alice", map[string]string{"k": "v"})))
	require.NoError(t, store.Close())

	// Same file, wrong secret: records must be unreadable.
	wrong, err := accounts.NewSQLiteStore(path, "secret-two")
	require.NoError(t, err)
	defer wrong.Close()

	_, err = wrong.List(ctx, "svc")
	require.ErrorIs(t, err, accounts.ErrDecrypt)
}

func TestSQLiteStore_ReopenWithSameSecret(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.db")

	store, err := accounts.NewSQLiteStore(path, "stable-secret")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "svc", accounts.New("alice", map[string]string{"k": "v"})))
	require.NoError(t, store.Close())

	reopened, err := accounts.NewSQLiteStore(path, "stable-secret")
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.List(ctx, "svc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v", got[0].Property("k"))
}

func TestAccount(t *testing.T) {
	t.Parallel()

	t.Run("new copies properties", func(t *testing.T) {
		t.Parallel()
		props := map[string]string{"k": "v"}
		acc := accounts.New("alice", props)
		props["k"] = "changed"
		assert.Equal(t, "v", acc.Property("k"))
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()
		acc := accounts.New("alice", map[string]string{"k": "v"})
		clone := acc.Clone()
		clone.Properties["k"] = "changed"
		assert.Equal(t, "v", acc.Property("k"))
	})

	t.Run("nil receiver is safe", func(t *testing.T) {
		t.Parallel()
		var acc *accounts.Account
		assert.Empty(t, acc.Property("k"))
		assert.Nil(t, acc.Clone())
	})
}
