// Package oauth implements OAuth2 redirect flows for native
// applications: the authorization-code grant (CodeFlow) and the
// legacy implicit grant (ImplicitFlow).
//
// Both flows implement redirect.Authenticator and share the account
// and outcome shape of the OAuth1 flow, so the same browser surface
// and orchestration code drives either protocol:
//
//	flow, err := oauth.NewCodeFlow(oauth.Config{
//		ClientID:     id,
//		ClientSecret: secret,
//		AuthURL:      "https://provider.example/oauth/authorize",
//		TokenURL:     "https://provider.example/oauth/token",
//		CallbackURL:  "http://127.0.0.1:8089/cb",
//		Scopes:       []string{"profile"},
//	})
//	if err != nil {
//		return err
//	}
//	account, err := authkit.Run(ctx, flow, surface)
//
// The code flow exchanges the callback's authorization code for tokens
// through golang.org/x/oauth2; the implicit flow reads the access
// token straight from the callback URL fragment. Both verify the
// anti-forgery state parameter and raise exactly one terminal outcome
// per attempt.
package oauth
