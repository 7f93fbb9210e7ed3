package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"

	"golang.org/x/oauth2"

	"github.com/authkit-go/authkit/pkg/accounts"
	"github.com/authkit-go/authkit/pkg/form"
	"github.com/authkit-go/authkit/pkg/redirect"
)

// ImplicitFlow drives a single OAuth2 implicit-grant attempt. The
// provider delivers the access token directly in the callback URL
// fragment (#access_token=...), so no token endpoint or client secret
// is involved. Intended for providers that still only offer the
// implicit grant; prefer CodeFlow where possible.
type ImplicitFlow struct {
	cfg        Config
	oauth2cfg  *oauth2.Config
	state      string
	resolver   redirect.UsernameResolver
	matcher    *redirect.Matcher
	completion *redirect.Completion
	logger     *slog.Logger

	phase atomic.Int32
}

// NewImplicitFlow validates the configuration and creates a flow.
func NewImplicitFlow(cfg Config, opts ...Option) (*ImplicitFlow, error) {
	if err := cfg.validate(false); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	matcher, err := redirect.NewMatcher(cfg.CallbackURL, o.logger)
	if err != nil {
		return nil, errors.Join(ErrMissingCallbackURL, err)
	}

	return &ImplicitFlow{
		cfg: cfg,
		oauth2cfg: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.CallbackURL,
			Scopes:      cfg.Scopes,
			Endpoint:    oauth2.Endpoint{AuthURL: cfg.AuthURL},
		},
		state:      o.state,
		resolver:   o.resolver,
		matcher:    matcher,
		completion: redirect.NewCompletion(),
		logger:     o.logger,
	}, nil
}

// Done returns the channel the terminal outcome is delivered on.
func (f *ImplicitFlow) Done() <-chan redirect.Result {
	return f.completion.Done()
}

// InitialURL returns the provider authorization URL with
// response_type=token.
func (f *ImplicitFlow) InitialURL(ctx context.Context) (string, error) {
	if !f.phase.CompareAndSwap(stateIdle, stateAwaitingAuthorization) {
		return "", ErrAlreadyStarted
	}
	return f.oauth2cfg.AuthCodeURL(f.state,
		oauth2.SetAuthURLParam("response_type", "token")), nil
}

// OnPageLoaded handles a navigation event. On a callback match the
// fragment is decoded and the access token extracted; the terminal
// outcome is raised without any further network round trip.
func (f *ImplicitFlow) OnPageLoaded(ctx context.Context, pageURL string) {
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
		f.fail(fmt.Errorf("%w: unparseable callback", ErrMissingAccessToken))
		return
	}

	// Implicit-grant data rides the fragment, not the query. Providers
	// report errors in either; check both.
	fragment := form.Decode(u.EscapedFragment())
	if denied, ok := fragment.Get("error"); ok {
		f.fail(fmt.Errorf("%w: %s", ErrProviderDenied, denied))
		return
	}
	if denied, ok := form.Decode(u.RawQuery).Get("error"); ok {
		f.fail(fmt.Errorf("%w: %s", ErrProviderDenied, denied))
		return
	}
	if got, _ := fragment.Get("state"); got != f.state {
		f.fail(ErrStateMismatch)
		return
	}
	token, ok := fragment.Get("access_token")
	if !ok || token == "" {
		f.fail(ErrMissingAccessToken)
		return
	}

	properties := fragment.Map()
	delete(properties, "state")

	f.complete(ctx, properties)
}

// OnNavigationFailed recovers the intended target from custom-scheme
// navigation failures and treats it like a loaded page.
func (f *ImplicitFlow) OnNavigationFailed(ctx context.Context, failure redirect.NavigationFailure) {
	if failure.FailingURL == "" {
		f.logger.Debug("navigation failed without a recoverable URL",
			slog.Int("code", failure.Code),
			slog.String("description", failure.Description))
		return
	}
	f.OnPageLoaded(ctx, failure.FailingURL)
}

func (f *ImplicitFlow) complete(ctx context.Context, properties map[string]string) {
	username := ""
	if f.resolver != nil {
		var err error
		username, err = f.resolver(ctx, properties)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				f.phase.Store(stateDone)
				f.completion.Complete(nil, errors.Join(redirect.ErrCancelled, err))
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

func (f *ImplicitFlow) fail(err error) {
	f.phase.Store(stateDone)
	if f.completion.Complete(nil, err) {
		f.logger.Error("authorization failed", slog.Any("error", err))
	}
}
