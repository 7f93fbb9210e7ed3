package oauth1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/authkit-go/authkit/pkg/accounts"
	"github.com/authkit-go/authkit/pkg/form"
	"github.com/authkit-go/authkit/pkg/redirect"
)

// Flow states. Transitions are guarded by compare-and-swap so that
// navigation events racing network responses cannot double-fire an
// exchange or revive a finished attempt.
const (
	stateIdle int32 = iota
	stateRequestToken
	stateAwaitingAuthorization
	stateAccessToken
	stateDone
)

// Flow drives a single three-legged OAuth1 authorization attempt:
// request token, user authorization in a hosting browser surface,
// verifier callback, access token. It implements redirect.Authenticator
// and raises exactly one terminal outcome. A Flow is not reusable;
// restarting the sequence means constructing a new one.
type Flow struct {
	cfg        Config
	signer     *Signer
	client     *http.Client
	resolver   redirect.UsernameResolver
	matcher    *redirect.Matcher
	completion *redirect.Completion
	logger     *slog.Logger

	state atomic.Int32

	// Transient attempt state, populated strictly in protocol order.
	// Written on the request-token path before the state advances to
	// stateAwaitingAuthorization, read on the access-token path after
	// the CAS into stateAccessToken; the state word orders the two.
	token       string
	tokenSecret string
	verifier    string
}

// Option configures a Flow.
type Option func(*Flow)

// WithHTTPClient sets the HTTP client used for the request-token and
// access-token exchanges. This is where callers put timeouts; the flow
// itself imposes no deadline. Useful for testing with httptest servers.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Flow) {
		f.client = client
	}
}

// WithResolver sets the username resolver invoked with the account
// properties after a successful access-token exchange. Without a
// resolver the flow succeeds with an empty username.
func WithResolver(resolver redirect.UsernameResolver) Option {
	return func(f *Flow) {
		f.resolver = resolver
	}
}

// WithLogger sets the diagnostic log sink. Logging is optional; the
// default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithSigner replaces the request signer. Used in tests to pin nonce
// and timestamp.
func WithSigner(signer *Signer) Option {
	return func(f *Flow) {
		f.signer = signer
	}
}

// NewFlow validates the configuration and creates a flow. All
// configuration problems surface here, never mid-sequence.
func NewFlow(cfg Config, opts ...Option) (*Flow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Flow{
		cfg:        cfg,
		client:     http.DefaultClient,
		completion: redirect.NewCompletion(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.signer == nil {
		signer, err := NewSigner(cfg.ConsumerKey, cfg.ConsumerSecret)
		if err != nil {
			return nil, err
		}
		f.signer = signer
	}

	matcher, err := redirect.NewMatcher(cfg.CallbackURL, f.logger)
	if err != nil {
		return nil, errors.Join(ErrMissingCallbackURL, err)
	}
	f.matcher = matcher

	return f, nil
}

// Done returns the channel the terminal outcome is delivered on.
func (f *Flow) Done() <-chan redirect.Result {
	return f.completion.Done()
}

// InitialURL performs the request-token exchange and returns the
// authorize URL to display. The oauth_callback parameter carries the
// callback URL exactly as configured; providers compare it literally
// against the registered redirect URL, so it is never normalized.
func (f *Flow) InitialURL(ctx context.Context) (string, error) {
	if !f.state.CompareAndSwap(stateIdle, stateRequestToken) {
		return "", ErrAlreadyStarted
	}

	extra := form.New()
	extra.Set("oauth_callback", f.cfg.CallbackURL)

	body, err := f.execute(ctx, f.cfg.RequestTokenURL, extra, "", "")
	if err != nil {
		f.fail(err)
		return "", err
	}

	response := form.Decode(body)
	token, ok := response.Get("oauth_token")
	if !ok || token == "" {
		err := fmt.Errorf("%w: request token response missing oauth_token", ErrProtocol)
		f.fail(err)
		return "", err
	}
	secret, ok := response.Get("oauth_token_secret")
	if !ok {
		err := fmt.Errorf("%w: request token response missing oauth_token_secret", ErrProtocol)
		f.fail(err)
		return "", err
	}

	f.token = token
	f.tokenSecret = secret

	authorizeURL := appendQuery(f.cfg.AuthorizeURL, "oauth_token", token)
	f.state.Store(stateAwaitingAuthorization)
	f.logger.Debug("awaiting user authorization",
		slog.String("authorize_url", f.cfg.AuthorizeURL))
	return authorizeURL, nil
}

// OnPageLoaded reports a loaded page. Events before the flow awaits
// authorization are ignored, as are navigations that do not match the
// callback's authority and path. On a match the verifier is extracted
// from the query and the access-token exchange runs synchronously; the
// compare-and-swap guarantees at most one exchange per attempt even
// when matching navigations arrive back to back.
func (f *Flow) OnPageLoaded(ctx context.Context, pageURL string) {
	if f.state.Load() != stateAwaitingAuthorization {
		f.logger.Debug("ignoring navigation outside authorization step",
			slog.String("url", pageURL))
		return
	}
	if !f.matcher.Matches(pageURL) {
		return
	}
	if !f.state.CompareAndSwap(stateAwaitingAuthorization, stateAccessToken) {
		return
	}

	// Verifier extraction is best-effort; some providers omit it.
	if u, err := url.Parse(pageURL); err == nil {
		if v, ok := form.Decode(u.RawQuery).Get("oauth_verifier"); ok {
			f.verifier = v
		}
	}

	f.exchangeAccessToken(ctx)
}

// OnNavigationFailed reports a hard navigation failure. Platforms that
// cannot navigate to custom URI schemes embed the intended target in
// the failure; when present it is handled exactly like a loaded page.
func (f *Flow) OnNavigationFailed(ctx context.Context, failure redirect.NavigationFailure) {
	if failure.FailingURL == "" {
		f.logger.Debug("navigation failed without a recoverable URL",
			slog.Int("code", failure.Code),
			slog.String("description", failure.Description))
		return
	}
	f.OnPageLoaded(ctx, failure.FailingURL)
}

// exchangeAccessToken trades the request token and verifier for an
// access token and raises the terminal outcome.
func (f *Flow) exchangeAccessToken(ctx context.Context) {
	extra := form.New()
	extra.Set("oauth_token", f.token)
	if f.verifier != "" {
		extra.Set("oauth_verifier", f.verifier)
	}

	body, err := f.execute(ctx, f.cfg.AccessTokenURL, extra, f.token, f.tokenSecret)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			f.cancel(err)
			return
		}
		f.fail(err)
		return
	}

	properties := form.Decode(body).Map()
	// The consumer credentials are deliberately part of the result,
	// consumer secret included. Anything storing these properties
	// must treat them as sensitive.
	properties["oauth_consumer_key"] = f.cfg.ConsumerKey
	properties["oauth_consumer_secret"] = f.cfg.ConsumerSecret

	username := ""
	if f.resolver != nil {
		username, err = f.resolver(ctx, properties)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				f.cancel(err)
				return
			}
			f.fail(errors.Join(ErrResolver, err))
			return
		}
	}

	f.state.Store(stateDone)
	if f.completion.Complete(accounts.New(username, properties), nil) {
		f.logger.Info("authorization succeeded", slog.String("username", username))
	}
}

// execute builds a signed GET, runs it, and returns the response body.
func (f *Flow) execute(ctx context.Context, endpoint string, extra *form.Values, token, tokenSecret string) (string, error) {
	req, err := f.signer.NewRequest(ctx, http.MethodGet, endpoint, extra, token, tokenSecret)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return string(body), nil
}

func (f *Flow) fail(err error) {
	f.state.Store(stateDone)
	if f.completion.Complete(nil, err) {
		f.logger.Error("authorization failed", slog.Any("error", err))
	}
}

func (f *Flow) cancel(cause error) {
	f.state.Store(stateDone)
	if f.completion.Complete(nil, errors.Join(redirect.ErrCancelled, cause)) {
		f.logger.Info("authorization cancelled")
	}
}

// appendQuery appends key=value to rawURL, choosing "?" or "&" by
// whether the URL already carries a query.
func appendQuery(rawURL, key, value string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + key + "=" + url.QueryEscape(value)
}
