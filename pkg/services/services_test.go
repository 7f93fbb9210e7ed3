package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-go/authkit/pkg/services"
)

const catalogDoc = `
services:
  - name: twitter
    protocol: oauth1
    callback_url: myapp://callback
    oauth1:
      consumer_key: ck
      consumer_secret: cs
      request_token_url: https://api.twitter.com/oauth/request_token
      authorize_url: https://api.twitter.com/oauth/authorize
      access_token_url: https://api.twitter.com/oauth/access_token
  - name: github
    protocol: oauth2-code
    callback_url: http://127.0.0.1:8723/callback
    oauth2:
      client_id: id
      client_secret: secret
      auth_url: https://github.com/login/oauth/authorize
      token_url: https://github.com/login/oauth/access_token
      scopes: [read:user]
  - name: legacy
    protocol: oauth2-implicit
    callback_url: myapp://callback
    oauth2:
      client_id: id
      auth_url: https://legacy.example/authorize
`

func writeCatalog(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("decodes catalog document", func(t *testing.T) {
		t.Parallel()
		defs, err := services.Load([]byte(catalogDoc))
		require.NoError(t, err)
		require.Len(t, defs, 3)

		assert.Equal(t, "twitter", defs[0].Name)
		assert.Equal(t, services.ProtocolOAuth1, defs[0].Protocol)
		assert.Equal(t, "ck", defs[0].OAuth1.ConsumerKey)
		assert.Equal(t, []string{"read:user"}, defs[1].OAuth2.Scopes)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()
		doc := `
services:
  - name: twitter
    protocol: oauth1
    callback_url: myapp://cb
    oauth1: {consumer_key: a, consumer_secret: b, request_token_url: u, authorize_url: u, access_token_url: u}
  - name: twitter
    protocol: oauth1
    callback_url: myapp://cb
    oauth1: {consumer_key: a, consumer_secret: b, request_token_url: u, authorize_url: u, access_token_url: u}
`
		_, err := services.Load([]byte(doc))
		require.ErrorIs(t, err, services.ErrDuplicateService)
	})

	t.Run("rejects unknown protocol", func(t *testing.T) {
		t.Parallel()
		doc := `
services:
  - name: x
    protocol: saml
    callback_url: myapp://cb
`
		_, err := services.Load([]byte(doc))
		require.ErrorIs(t, err, services.ErrInvalidDefinition)
	})

	t.Run("rejects protocol without endpoint block", func(t *testing.T) {
		t.Parallel()
		doc := `
services:
  - name: x
    protocol: oauth1
    callback_url: myapp://cb
`
		_, err := services.Load([]byte(doc))
		require.ErrorIs(t, err, services.ErrInvalidDefinition)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := services.Load([]byte("services: [}"))
		require.ErrorIs(t, err, services.ErrParse)
	})
}

func TestDefinition_NewFlow(t *testing.T) {
	t.Parallel()

	defs, err := services.Load([]byte(catalogDoc))
	require.NoError(t, err)

	for _, def := range defs {
		def := def
		t.Run(def.Name, func(t *testing.T) {
			t.Parallel()
			flow, err := def.NewFlow(services.FlowOptions{})
			require.NoError(t, err)
			require.NotNil(t, flow)
			require.NotNil(t, flow.Done())
		})
	}

	t.Run("invalid definition fails", func(t *testing.T) {
		t.Parallel()
		def := services.Definition{Name: "broken", Protocol: services.ProtocolOAuth1}
		_, err := def.NewFlow(services.FlowOptions{})
		require.ErrorIs(t, err, services.ErrInvalidDefinition)
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("get and names", func(t *testing.T) {
		t.Parallel()
		defs, err := services.Load([]byte(catalogDoc))
		require.NoError(t, err)

		catalog := services.NewCatalog()
		catalog.Replace(defs)

		assert.Equal(t, []string{"github", "legacy", "twitter"}, catalog.Names())
		assert.Equal(t, 3, catalog.Len())

		def, err := catalog.Get("twitter")
		require.NoError(t, err)
		assert.Equal(t, services.ProtocolOAuth1, def.Protocol)

		_, err = catalog.Get("nope")
		require.ErrorIs(t, err, services.ErrUnknownService)
	})

	t.Run("reload from file", func(t *testing.T) {
		t.Parallel()
		path := writeCatalog(t, catalogDoc)

		catalog := services.NewCatalog()
		require.NoError(t, catalog.Reload(path))
		assert.Equal(t, 3, catalog.Len())
	})

	t.Run("failed reload keeps previous contents", func(t *testing.T) {
		t.Parallel()
		path := writeCatalog(t, catalogDoc)

		catalog := services.NewCatalog()
		require.NoError(t, catalog.Reload(path))

		require.NoError(t, os.WriteFile(path, []byte("services: [}"), 0o600))
		require.Error(t, catalog.Reload(path))
		assert.Equal(t, 3, catalog.Len())
	})
}

func TestCatalog_Watch(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, catalogDoc)
	catalog := services.NewCatalog()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- catalog.Watch(context.Background(), path)
	}()

	require.Eventually(t, func() bool {
		return catalog.Len() == 3
	}, 5*time.Second, 20*time.Millisecond)

	smaller := `
services:
  - name: github
    protocol: oauth2-code
    callback_url: http://127.0.0.1:8723/callback
    oauth2:
      client_id: id
      client_secret: secret
      auth_url: https://github.com/login/oauth/authorize
      token_url: https://github.com/login/oauth/access_token
`
	require.NoError(t, os.WriteFile(path, []byte(smaller), 0o600))

	require.Eventually(t, func() bool {
		return catalog.Len() == 1
	}, 5*time.Second, 20*time.Millisecond)

	names := catalog.Names()
	assert.Equal(t, []string{"github"}, names)
}
