package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-go/authkit/pkg/form"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("basic pairs", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("oauth_token=T1&oauth_token_secret=S1")
		require.Equal(t, 2, v.Len())

		token, ok := v.Get("oauth_token")
		require.True(t, ok)
		assert.Equal(t, "T1", token)

		secret, ok := v.Get("oauth_token_secret")
		require.True(t, ok)
		assert.Equal(t, "S1", secret)
	})

	t.Run("strips question mark prefix", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("?oauth_verifier=abc123")
		verifier, ok := v.Get("oauth_verifier")
		require.True(t, ok)
		assert.Equal(t, "abc123", verifier)
	})

	t.Run("strips hash prefix", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("#access_token=tok&expires_in=3600")
		token, ok := v.Get("access_token")
		require.True(t, ok)
		assert.Equal(t, "tok", token)
	})

	t.Run("segment without equals yields empty value", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("flag&key=val")
		flag, ok := v.Get("flag")
		require.True(t, ok)
		assert.Empty(t, flag)
	})

	t.Run("percent-decodes keys and values", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("cb=http%3A%2F%2Fx.com&name=john%20doe")
		cb, _ := v.Get("cb")
		assert.Equal(t, "http://x.com", cb)
		name, _ := v.Get("name")
		assert.Equal(t, "john doe", name)
	})

	t.Run("plus decodes as space", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("name=john+doe")
		name, _ := v.Get("name")
		assert.Equal(t, "john doe", name)
	})

	t.Run("malformed segments are skipped", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("good=1&bad=%zz&also=2")
		require.Equal(t, 2, v.Len())
		assert.False(t, v.Has("bad"))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0, form.Decode("").Len())
		assert.Equal(t, 0, form.Decode("?").Len())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()
		v := form.Decode("z=1&a=2&m=3")
		pairs := v.Pairs()
		require.Len(t, pairs, 3)
		assert.Equal(t, "z", pairs[0].Key)
		assert.Equal(t, "a", pairs[1].Key)
		assert.Equal(t, "m", pairs[2].Key)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		pairs [][2]string
	}{
		{"plain", [][2]string{{"a", "1"}, {"b", "2"}}},
		{"value with ampersand", [][2]string{{"k", "a&b"}}},
		{"value with equals", [][2]string{{"k", "a=b"}}},
		{"value with both reserved", [][2]string{{"k", "a&b=c&d"}}},
		{"url value", [][2]string{{"oauth_callback", "http://x.com"}}},
		{"spaces and unicode", [][2]string{{"name", "jöhn doe"}, {"emoji", "✓"}}},
		{"empty value", [][2]string{{"flag", ""}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v := form.New()
			for _, p := range tc.pairs {
				v.Add(p[0], p[1])
			}

			decoded := form.Decode(v.Encode())
			require.Equal(t, v.Len(), decoded.Len())
			for _, p := range tc.pairs {
				got, ok := decoded.Get(p[0])
				require.True(t, ok, "missing key %q", p[0])
				assert.Equal(t, p[1], got)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	t.Run("set replaces existing key", func(t *testing.T) {
		t.Parallel()
		v := form.New()
		v.Set("k", "1")
		v.Set("k", "2")
		require.Equal(t, 1, v.Len())
		got, _ := v.Get("k")
		assert.Equal(t, "2", got)
	})

	t.Run("add keeps duplicates and get returns first", func(t *testing.T) {
		t.Parallel()
		v := form.New()
		v.Add("k", "1")
		v.Add("k", "2")
		require.Equal(t, 2, v.Len())
		got, _ := v.Get("k")
		assert.Equal(t, "1", got)
	})

	t.Run("map uses first occurrence", func(t *testing.T) {
		t.Parallel()
		v := form.New()
		v.Add("k", "1")
		v.Add("k", "2")
		v.Add("x", "y")
		m := v.Map()
		assert.Equal(t, map[string]string{"k": "1", "x": "y"}, m)
	})

	t.Run("nil receiver is safe", func(t *testing.T) {
		t.Parallel()
		var v *form.Values
		_, ok := v.Get("k")
		assert.False(t, ok)
		assert.Equal(t, 0, v.Len())
		assert.Empty(t, v.Encode())
	})
}
