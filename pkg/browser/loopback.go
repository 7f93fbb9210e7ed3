package browser

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/authkit-go/authkit/pkg/redirect"
)

const defaultResponsePage = `<!DOCTYPE html>
<html><head><title>Authorization complete</title></head>
<body><p>Authorization complete. You can close this window and return to the application.</p></body></html>`

// Loopback catches the authorization redirect on a local HTTP
// listener. It is the standard surface for native apps without a
// webview: the callback URL points at 127.0.0.1, the provider
// redirects the system browser there, and the caught request is
// forwarded to the flow as a page-loaded event.
type Loopback struct {
	flow         redirect.Authenticator
	callback     *url.URL
	logger       *slog.Logger
	responsePage string

	server   *http.Server
	listener net.Listener
	group    *errgroup.Group
	stop     context.CancelFunc
}

// LoopbackOption configures a Loopback.
type LoopbackOption func(*Loopback)

// WithResponsePage replaces the HTML shown in the browser tab after
// the redirect is caught.
func WithResponsePage(html string) LoopbackOption {
	return func(l *Loopback) {
		l.responsePage = html
	}
}

// WithLoopbackLogger sets the diagnostic log sink.
func WithLoopbackLogger(logger *slog.Logger) LoopbackOption {
	return func(l *Loopback) {
		l.logger = logger
	}
}

// NewLoopback creates a catcher for callbackURL, which must point at a
// loopback address (127.0.0.1, ::1 or localhost) and carry an explicit
// port. Nothing is bound until Start.
func NewLoopback(flow redirect.Authenticator, callbackURL string, opts ...LoopbackOption) (*Loopback, error) {
	if flow == nil {
		return nil, ErrNilFlow
	}

	u, err := url.Parse(callbackURL)
	if err != nil || u.Host == "" {
		return nil, ErrInvalidCallbackURL
	}
	if !isLoopbackHost(u.Hostname()) {
		return nil, ErrNotLoopback
	}

	l := &Loopback{
		flow:         flow,
		callback:     u,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		responsePage: defaultResponsePage,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Start binds the listener and begins serving. It returns immediately;
// the server shuts down when ctx is cancelled or Close is called.
func (l *Loopback) Start(ctx context.Context) error {
	path := l.callback.Path
	if path == "" {
		path = "/"
	}

	router := chi.NewRouter()
	router.Get(path, l.handleCallback(ctx))

	addr := l.callback.Host
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	l.listener = listener
	l.server = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	runCtx, stop := context.WithCancel(ctx)
	l.stop = stop

	g, gctx := errgroup.WithContext(runCtx)
	l.group = g
	g.Go(func() error {
		if err := l.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return l.server.Shutdown(shutdownCtx)
	})

	l.logger.Debug("loopback listening", slog.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (l *Loopback) Addr() string {
	if l.listener == nil {
		return ""
	}
	return l.listener.Addr().String()
}

// Close shuts the server down and waits for the serve goroutines.
func (l *Loopback) Close() error {
	if l.server == nil {
		return nil
	}
	l.stop()
	if err := l.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// handleCallback forwards the caught redirect to the flow. The full
// callback URL is reconstructed so the flow sees exactly what it would
// have seen as a webview navigation event.
func (l *Loopback) handleCallback(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		full := *l.callback
		full.RawQuery = r.URL.RawQuery

		l.logger.Debug("caught callback", slog.String("path", r.URL.Path))
		l.flow.OnPageLoaded(ctx, full.String())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(l.responsePage))
	}
}

func isLoopbackHost(hostname string) bool {
	if strings.EqualFold(hostname, "localhost") {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}
