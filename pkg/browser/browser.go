// Package browser defines the browser-surface contract redirect flows
// are hosted on, plus a loopback HTTP implementation for CLI and
// desktop callers that have no embedded webview.
package browser

import "context"

// Surface is anything that can present a URL to the user: a native
// webview, the system browser, or a test double. Navigation events are
// delivered to the flow separately, by whatever mechanism the surface
// observes them with.
type Surface interface {
	// Display shows the URL to the user. It returns once the URL is
	// handed off; it does not wait for the user to finish.
	Display(ctx context.Context, url string) error
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(ctx context.Context, url string) error

// Display calls f.
func (f SurfaceFunc) Display(ctx context.Context, url string) error {
	return f(ctx, url)
}
