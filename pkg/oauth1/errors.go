package oauth1

import "errors"

var (
	// ErrMissingConsumerKey is returned when the consumer key is not provided.
	ErrMissingConsumerKey = errors.New("oauth1: missing consumer key")

	// ErrMissingConsumerSecret is returned when the consumer secret is not provided.
	ErrMissingConsumerSecret = errors.New("oauth1: missing consumer secret")

	// ErrMissingRequestTokenURL is returned when the request token endpoint is not provided.
	ErrMissingRequestTokenURL = errors.New("oauth1: missing request token URL")

	// ErrMissingAuthorizeURL is returned when the authorize endpoint is not provided.
	ErrMissingAuthorizeURL = errors.New("oauth1: missing authorize URL")

	// ErrMissingAccessTokenURL is returned when the access token endpoint is not provided.
	ErrMissingAccessTokenURL = errors.New("oauth1: missing access token URL")

	// ErrMissingCallbackURL is returned when the callback URL is not provided.
	ErrMissingCallbackURL = errors.New("oauth1: missing callback URL")

	// ErrInvalidURL is returned when an endpoint URL is not absolute.
	ErrInvalidURL = errors.New("oauth1: URL must be absolute")

	// ErrAlreadyStarted is returned when InitialURL is called twice on
	// the same flow. A flow drives exactly one attempt.
	ErrAlreadyStarted = errors.New("oauth1: flow already started")

	// ErrProtocol is returned when a provider response is missing an
	// expected field, e.g. no oauth_token in the request token response.
	ErrProtocol = errors.New("oauth1: malformed provider response")

	// ErrRequestFailed is returned when an exchange fails at the
	// transport level or with a non-2xx status.
	ErrRequestFailed = errors.New("oauth1: request failed")

	// ErrResolver is returned when the username resolver fails.
	ErrResolver = errors.New("oauth1: username resolver failed")
)
