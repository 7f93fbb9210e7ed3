package redirect

import "context"

// Authenticator is a redirect-driven authentication flow. The hosting
// browser surface asks for the initial URL to display, then feeds
// navigation events back in. The flow raises exactly one terminal
// outcome per attempt through its completion channel.
type Authenticator interface {
	// InitialURL performs any pre-authorization exchanges and returns
	// the URL the hosting surface should display to the user.
	InitialURL(ctx context.Context) (string, error)

	// OnPageLoaded reports that the surface finished loading pageURL.
	// URLs that do not match the expected callback are ignored.
	OnPageLoaded(ctx context.Context, pageURL string)

	// OnNavigationFailed reports a hard navigation failure. Some
	// platforms cannot navigate to custom URI schemes; the intended
	// target is then recovered from the failure's FailingURL and
	// treated like a loaded page.
	OnNavigationFailed(ctx context.Context, failure NavigationFailure)
}

// NavigationFailure describes a failed navigation reported by the
// hosting browser surface.
type NavigationFailure struct {
	// Code is the platform-specific error code.
	Code int

	// Description is the platform-specific error text.
	Description string

	// FailingURL is the URL the navigation was headed to, when the
	// platform exposes it. May be empty.
	FailingURL string
}

// UsernameResolver resolves the authenticated username from the
// property bag returned by the provider. Supplied by the caller;
// flows succeed with an empty username when no resolver is set.
type UsernameResolver func(ctx context.Context, properties map[string]string) (string, error)
