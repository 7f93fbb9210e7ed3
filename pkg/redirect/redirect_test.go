package redirect_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-go/authkit/pkg/accounts"
	"github.com/authkit-go/authkit/pkg/redirect"
)

func TestNewMatcher(t *testing.T) {
	t.Parallel()

	t.Run("requires callback URL", func(t *testing.T) {
		t.Parallel()
		m, err := redirect.NewMatcher("", nil)
		require.ErrorIs(t, err, redirect.ErrMissingCallbackURL)
		require.Nil(t, m)
	})

	t.Run("rejects relative URL", func(t *testing.T) {
		t.Parallel()
		m, err := redirect.NewMatcher("/cb", nil)
		require.ErrorIs(t, err, redirect.ErrInvalidCallbackURL)
		require.Nil(t, m)
	})

	t.Run("accepts custom scheme", func(t *testing.T) {
		t.Parallel()
		m, err := redirect.NewMatcher("myapp://cb", nil)
		require.NoError(t, err)
		require.NotNil(t, m)
	})

	t.Run("keeps literal callback string", func(t *testing.T) {
		t.Parallel()
		m, err := redirect.NewMatcher("http://x.com", nil)
		require.NoError(t, err)
		assert.Equal(t, "http://x.com", m.CallbackURL())
	})
}

func TestMatcher_Matches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		callback  string
		candidate string
		want      bool
	}{
		{"exact match", "https://example.com/cb", "https://example.com/cb", true},
		{"query excluded", "https://example.com/cb", "https://example.com/cb?oauth_verifier=V1", true},
		{"fragment excluded", "https://example.com/cb", "https://example.com/cb#frag", true},
		{"authority is case-insensitive", "https://Example.COM/cb", "https://example.com/cb", true},
		{"path is case-sensitive", "https://example.com/cb", "https://example.com/CB", false},
		{"www does not match bare host", "https://example.com/cb", "https://www.example.com/cb", false},
		{"different port is a different authority", "https://example.com/cb", "https://example.com:8443/cb", false},
		{"different path", "https://example.com/cb", "https://example.com/other", false},
		{"custom scheme", "myapp://cb", "myapp://cb?oauth_verifier=abc123", true},
		{"empty and root path compare equal", "http://x.com", "http://x.com/", true},
		{"relative candidate never matches", "https://example.com/cb", "/cb", false},
		{"garbage candidate never matches", "https://example.com/cb", "://nope", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := redirect.NewMatcher(tc.callback, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.Matches(tc.candidate))
		})
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	t.Run("delivers single result", func(t *testing.T) {
		t.Parallel()
		c := redirect.NewCompletion()
		acc := accounts.New("alice", nil)

		require.True(t, c.Complete(acc, nil))
		res := <-c.Done()
		require.NoError(t, res.Err)
		assert.Equal(t, "alice", res.Account.Username)
	})

	t.Run("second completion is dropped", func(t *testing.T) {
		t.Parallel()
		c := redirect.NewCompletion()

		require.True(t, c.Complete(nil, errors.New("first")))
		require.False(t, c.Complete(accounts.New("late", nil), nil))

		res := <-c.Done()
		require.EqualError(t, res.Err, "first")
		assert.Nil(t, res.Account)
	})

	t.Run("completed flag", func(t *testing.T) {
		t.Parallel()
		c := redirect.NewCompletion()
		assert.False(t, c.Completed())
		c.Complete(nil, redirect.ErrCancelled)
		assert.True(t, c.Completed())
	})

	t.Run("concurrent completes race safely", func(t *testing.T) {
		t.Parallel()
		c := redirect.NewCompletion()

		var wins int64
		var mu sync.Mutex
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if c.Complete(accounts.New("alice", nil), nil) {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.EqualValues(t, 1, wins)
		res := <-c.Done()
		require.NotNil(t, res.Account)
	})
}

func TestIsCancelled(t *testing.T) {
	t.Parallel()
	assert.True(t, redirect.IsCancelled(redirect.ErrCancelled))
	assert.True(t, redirect.IsCancelled(errors.Join(redirect.ErrCancelled, errors.New("ctx"))))
	assert.False(t, redirect.IsCancelled(errors.New("other")))
}
