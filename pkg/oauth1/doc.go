// Package oauth1 implements the client side of the OAuth 1.0a
// three-legged authorization protocol for native applications.
//
// The package has two layers. Signer is the leaf: it builds signed
// HTTP requests per RFC 5849, merging the standard oauth_* protocol
// parameters with caller extras and computing the HMAC-SHA1 signature.
// Flow is the state engine: it drives the full sequence (request
// token, user authorization through a hosting browser surface,
// verifier callback, access token) and raises exactly one terminal
// outcome per attempt.
//
// # Usage
//
// Construct a flow from provider configuration, hand its initial URL
// to whatever surface renders pages, and feed navigation events back:
//
//	flow, err := oauth1.NewFlow(oauth1.Config{
//		ConsumerKey:     key,
//		ConsumerSecret:  secret,
//		RequestTokenURL: "https://api.twitter.com/oauth/request_token",
//		AuthorizeURL:    "https://api.twitter.com/oauth/authorize",
//		AccessTokenURL:  "https://api.twitter.com/oauth/access_token",
//		CallbackURL:     "myapp://cb",
//	}, oauth1.WithResolver(resolveScreenName))
//	if err != nil {
//		return err
//	}
//
//	authorizeURL, err := flow.InitialURL(ctx)
//	if err != nil {
//		return err
//	}
//	surface.Display(ctx, authorizeURL)
//
//	// surface event handlers call flow.OnPageLoaded /
//	// flow.OnNavigationFailed; then:
//	result := <-flow.Done()
//
// A flow is single-attempt: events after the terminal outcome are
// ignored, and a restarted authorization needs a fresh Flow so that
// token, token secret and verifier can never leak across attempts.
//
// The access-token response properties end up on the resulting
// account, with the consumer key and consumer secret injected
// alongside. That mirrors the protocol's historical behavior and is
// convenient for signing later API calls, but it means stored
// accounts carry the consumer secret; pair this package with an
// encrypted store such as accounts.SQLiteStore.
package oauth1
