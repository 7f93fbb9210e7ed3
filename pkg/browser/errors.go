package browser

import "errors"

var (
	// ErrNilFlow is returned when a loopback is created without a flow.
	ErrNilFlow = errors.New("browser: nil flow")

	// ErrNotLoopback is returned when the callback URL does not point
	// at a loopback address. The catcher refuses to bind anything else.
	ErrNotLoopback = errors.New("browser: callback URL must be a loopback address")

	// ErrInvalidCallbackURL is returned when the callback URL cannot be
	// parsed or carries no host.
	ErrInvalidCallbackURL = errors.New("browser: invalid callback URL")
)
