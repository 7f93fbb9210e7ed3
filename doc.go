// Package authkit is a toolkit for authorizing native and CLI apps
// against remote services over redirect-based protocols.
//
// A flow (OAuth 1.0a three-legged, OAuth2 authorization-code or
// implicit) is hosted on a browser surface. The surface shows the
// provider's authorization page and reports navigation events back to
// the flow; the flow recognizes its callback URL among them, finishes
// the protocol and reports a single outcome. Run ties the two
// together:
//
//	flow, err := oauth1.NewFlow(oauth1.Config{
//		ConsumerKey:     "ck",
//		ConsumerSecret:  "cs",
//		RequestTokenURL: "https://api.example.com/oauth/request_token",
//		AuthorizeURL:    "https://api.example.com/oauth/authorize",
//		AccessTokenURL:  "https://api.example.com/oauth/access_token",
//		CallbackURL:     "http://127.0.0.1:8723/callback",
//	})
//	if err != nil {
//		return err
//	}
//
//	loopback, err := browser.NewLoopback(flow, "http://127.0.0.1:8723/callback")
//	if err != nil {
//		return err
//	}
//	if err := loopback.Start(ctx); err != nil {
//		return err
//	}
//	defer loopback.Close()
//
//	account, err := authkit.Run(ctx, flow, browser.SurfaceFunc(openInBrowser),
//		authkit.WithStore(store, "example"),
//		authkit.WithTimeout(5*time.Minute))
//
// Subpackages:
//
//   - pkg/oauth1: OAuth 1.0a three-legged flow with HMAC-SHA1 signing
//   - pkg/oauth: OAuth2 authorization-code and implicit flows
//   - pkg/redirect: the surface-agnostic redirect-flow contract
//   - pkg/browser: loopback HTTP surface for apps without a webview
//   - pkg/services: YAML service catalog with live reload
//   - pkg/accounts: account model and encrypted SQLite persistence
//   - pkg/form: ordered form-encoding codec used by the OAuth1 wire
//     protocol
//   - pkg/logger: structured logging with credential redaction
//
// Flows are single-use. Build a fresh one for every attempt.
package authkit
