// Package redirect provides the shared machinery for redirect-based
// authentication flows: the Authenticator contract driven by a hosting
// browser surface, callback URL matching, and single-fire terminal
// outcome delivery.
//
// A redirect flow works against any surface that can display a URL and
// report navigation events. The surface calls InitialURL, shows the
// returned URL, and forwards page loads and navigation failures back to
// the flow. The flow watches for its callback URL and eventually raises
// exactly one of three outcomes: a successful account, a cancellation,
// or an error.
//
// Concrete flows (OAuth1, OAuth2 code and implicit grants) compose with
// Matcher and Completion instead of inheriting behavior:
//
//	matcher, err := redirect.NewMatcher("myapp://cb", logger)
//	if err != nil { ... }
//
//	// inside the flow's OnPageLoaded:
//	if !matcher.Matches(pageURL) {
//		return // intermediate navigation, ignore
//	}
//
// Matching compares the authority case-insensitively and the absolute
// path case-sensitively; query and fragment are excluded. Hosts are
// never normalized: a navigation to www.example.com/cb does not match a
// callback registered as example.com/cb.
//
// Completion guarantees the single-outcome invariant even when a
// navigation event races the network-response path:
//
//	if flow.completion.Complete(account, nil) {
//		// this call raised the terminal outcome
//	}
//
// Callers consume the outcome from Done(), typically through the root
// authkit.Run helper.
package redirect
