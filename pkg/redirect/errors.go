package redirect

import "errors"

var (
	// ErrCancelled is the terminal outcome of an attempt whose
	// exchange was cancelled. No retry is performed; restarting
	// means constructing a fresh flow.
	ErrCancelled = errors.New("redirect: authentication cancelled")

	// ErrMissingCallbackURL is returned when a matcher is built
	// without a callback URL.
	ErrMissingCallbackURL = errors.New("redirect: missing callback URL")

	// ErrInvalidCallbackURL is returned when the callback URL cannot
	// be parsed or is not absolute.
	ErrInvalidCallbackURL = errors.New("redirect: callback URL must be absolute")
)

// IsCancelled reports whether err represents a cancelled attempt.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
