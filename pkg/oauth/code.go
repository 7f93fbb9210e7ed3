package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/authkit-go/authkit/pkg/accounts"
	"github.com/authkit-go/authkit/pkg/form"
	"github.com/authkit-go/authkit/pkg/redirect"
)

const (
	stateIdle int32 = iota
	stateAwaitingAuthorization
	stateExchanging
	stateDone
)

// CodeFlow drives a single OAuth2 authorization-code attempt through a
// hosting browser surface. It implements redirect.Authenticator: the
// surface displays InitialURL, the provider redirects to the callback
// with a code, and the flow exchanges it for tokens and raises exactly
// one terminal outcome.
type CodeFlow struct {
	cfg        Config
	oauth2cfg  *oauth2.Config
	state      string
	client     *http.Client
	resolver   redirect.UsernameResolver
	matcher    *redirect.Matcher
	completion *redirect.Completion
	logger     *slog.Logger

	phase atomic.Int32
}

// Option configures a flow.
type Option func(*flowOptions)

type flowOptions struct {
	client   *http.Client
	resolver redirect.UsernameResolver
	logger   *slog.Logger
	state    string
}

// WithHTTPClient sets the HTTP client used for the token exchange.
// Useful for testing with httptest servers or injecting timeouts.
func WithHTTPClient(client *http.Client) Option {
	return func(o *flowOptions) {
		o.client = client
	}
}

// WithResolver sets the username resolver invoked with the account
// properties on success.
func WithResolver(resolver redirect.UsernameResolver) Option {
	return func(o *flowOptions) {
		o.resolver = resolver
	}
}

// WithLogger sets the diagnostic log sink.
func WithLogger(logger *slog.Logger) Option {
	return func(o *flowOptions) {
		o.logger = logger
	}
}

// WithState pins the anti-forgery state parameter. Used in tests; the
// default is a random UUID per flow.
func WithState(state string) Option {
	return func(o *flowOptions) {
		o.state = state
	}
}

func applyOptions(opts []Option) flowOptions {
	o := flowOptions{state: uuid.NewString()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// NewCodeFlow validates the configuration and creates a flow.
func NewCodeFlow(cfg Config, opts ...Option) (*CodeFlow, error) {
	if err := cfg.validate(true); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	matcher, err := redirect.NewMatcher(cfg.CallbackURL, o.logger)
	if err != nil {
		return nil, errors.Join(ErrMissingCallbackURL, err)
	}

	return &CodeFlow{
		cfg: cfg,
		oauth2cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		state:      o.state,
		client:     o.client,
		resolver:   o.resolver,
		matcher:    matcher,
		completion: redirect.NewCompletion(),
		logger:     o.logger,
	}, nil
}

// Done returns the channel the terminal outcome is delivered on.
func (f *CodeFlow) Done() <-chan redirect.Result {
	return f.completion.Done()
}

// InitialURL returns the provider authorization URL carrying the
// client ID, scopes, callback and anti-forgery state.
func (f *CodeFlow) InitialURL(ctx context.Context) (string, error) {
	if !f.phase.CompareAndSwap(stateIdle, stateAwaitingAuthorization) {
		return "", ErrAlreadyStarted
	}
	return f.oauth2cfg.AuthCodeURL(f.state), nil
}

// OnPageLoaded handles a navigation event. Callback matches are
// validated (provider error, state, code) and the code is exchanged
// for tokens synchronously; at most one exchange runs per attempt.
func (f *CodeFlow) OnPageLoaded(ctx context.Context, pageURL string) {
	if f.phase.Load() != stateAwaitingAuthorization {
		return
	}
	if !f.matcher.Matches(pageURL) {
		return
	}
	if !f.phase.CompareAndSwap(stateAwaitingAuthorization, stateExchanging) {
		return
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		f.fail(fmt.Errorf("%w: unparseable callback", ErrMissingCode))
		return
	}
	query := form.Decode(u.RawQuery)

	if denied, ok := query.Get("error"); ok {
		f.fail(fmt.Errorf("%w: %s", ErrProviderDenied, denied))
		return
	}
	if got, _ := query.Get("state"); got != f.state {
		f.fail(ErrStateMismatch)
		return
	}
	code, ok := query.Get("code")
	if !ok || code == "" {
		f.fail(ErrMissingCode)
		return
	}

	token, err := f.oauth2cfg.Exchange(f.httpContext(ctx), code)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			f.cancel(err)
			return
		}
		f.fail(errors.Join(ErrExchangeFailed, err))
		return
	}

	properties := map[string]string{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
	}
	if token.RefreshToken != "" {
		properties["refresh_token"] = token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		properties["expires_at"] = strconv.FormatInt(token.Expiry.Unix(), 10)
	}

	f.complete(ctx, properties)
}

// OnNavigationFailed recovers the intended target from custom-scheme
// navigation failures and treats it like a loaded page.
func (f *CodeFlow) OnNavigationFailed(ctx context.Context, failure redirect.NavigationFailure) {
	if failure.FailingURL == "" {
		f.logger.Debug("navigation failed without a recoverable URL",
			slog.Int("code", failure.Code),
			slog.String("description", failure.Description))
		return
	}
	f.OnPageLoaded(ctx, failure.FailingURL)
}

func (f *CodeFlow) complete(ctx context.Context, properties map[string]string) {
	username := ""
	if f.resolver != nil {
		var err error
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

	f.phase.Store(stateDone)
	if f.completion.Complete(accounts.New(username, properties), nil) {
		f.logger.Info("authorization succeeded", slog.String("username", username))
	}
}

func (f *CodeFlow) fail(err error) {
	f.phase.Store(stateDone)
	if f.completion.Complete(nil, err) {
		f.logger.Error("authorization failed", slog.Any("error", err))
	}
}

func (f *CodeFlow) cancel(cause error) {
	f.phase.Store(stateDone)
	if f.completion.Complete(nil, errors.Join(redirect.ErrCancelled, cause)) {
		f.logger.Info("authorization cancelled")
	}
}

// httpContext injects the configured HTTP client into the exchange
// context the way golang.org/x/oauth2 expects.
func (f *CodeFlow) httpContext(ctx context.Context) context.Context {
	if f.client != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, f.client)
	}
	return ctx
}
