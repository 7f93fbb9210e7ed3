package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the client secret is not
	// provided for a flow that requires one.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrMissingAuthURL is returned when the authorization endpoint is not provided.
	ErrMissingAuthURL = errors.New("oauth: missing auth URL")

	// ErrMissingTokenURL is returned when the token endpoint is not provided.
	ErrMissingTokenURL = errors.New("oauth: missing token URL")

	// ErrMissingCallbackURL is returned when the callback URL is not provided.
	ErrMissingCallbackURL = errors.New("oauth: missing callback URL")

	// ErrAlreadyStarted is returned when InitialURL is called twice on
	// the same flow.
	ErrAlreadyStarted = errors.New("oauth: flow already started")

	// ErrStateMismatch is returned when the callback state parameter
	// does not match the one issued with the authorization URL.
	ErrStateMismatch = errors.New("oauth: state mismatch")

	// ErrProviderDenied is returned when the callback carries an error
	// parameter from the provider.
	ErrProviderDenied = errors.New("oauth: provider returned an error")

	// ErrMissingCode is returned when the callback query has no code.
	ErrMissingCode = errors.New("oauth: callback missing authorization code")

	// ErrMissingAccessToken is returned when an implicit-grant callback
	// fragment has no access token.
	ErrMissingAccessToken = errors.New("oauth: callback missing access token")

	// ErrExchangeFailed is returned when the code-for-token exchange fails.
	ErrExchangeFailed = errors.New("oauth: token exchange failed")

	// ErrResolver is returned when the username resolver fails.
	ErrResolver = errors.New("oauth: username resolver failed")
)
