package authkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/authkit-go/authkit/pkg/accounts"
	"github.com/authkit-go/authkit/pkg/browser"
	"github.com/authkit-go/authkit/pkg/redirect"
)

var (
	// ErrNilFlow is returned when Run is called without a flow.
	ErrNilFlow = errors.New("authkit: nil flow")

	// ErrNilSurface is returned when Run is called without a surface.
	ErrNilSurface = errors.New("authkit: nil surface")

	// ErrSaveFailed wraps store errors raised after a successful
	// authorization. The account is still returned alongside it.
	ErrSaveFailed = errors.New("authkit: saving account failed")
)

// Flow is a single-use redirect authorization attempt. Every flow in
// this module satisfies it: oauth1.Flow, oauth.CodeFlow and
// oauth.ImplicitFlow.
type Flow interface {
	redirect.Authenticator
	Done() <-chan redirect.Result
}

// Run drives one authorization attempt end to end: it asks the flow
// for its initial URL, hands the URL to the surface, and waits for the
// flow to report its single outcome. It returns the authorized account
// or the terminal error.
//
// Cancelling ctx aborts the wait; the returned error then matches
// redirect.ErrCancelled. With WithStore, the account is persisted
// before Run returns; a store failure is reported via ErrSaveFailed
// with the account still returned.
func Run(ctx context.Context, flow Flow, surface browser.Surface, opts ...Option) (*accounts.Account, error) {
	if flow == nil {
		return nil, ErrNilFlow
	}
	if surface == nil {
		return nil, ErrNilSurface
	}

	cfg := newRunConfig(opts...)
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	initial, err := flow.InitialURL(ctx)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("displaying authorization page", slog.String("url", initial))
	if err := surface.Display(ctx, initial); err != nil {
		return nil, fmt.Errorf("authkit: displaying authorization page: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, errors.Join(redirect.ErrCancelled, ctx.Err())
	case res := <-flow.Done():
		if res.Err != nil {
			return nil, res.Err
		}
		return saveAccount(ctx, cfg, res.Account)
	}
}

func saveAccount(ctx context.Context, cfg runConfig, account *accounts.Account) (*accounts.Account, error) {
	if cfg.store == nil {
		return account, nil
	}
	if err := cfg.store.Save(ctx, cfg.serviceID, account); err != nil {
		cfg.logger.Error("account save failed",
			slog.String("service", cfg.serviceID),
			slog.Any("error", err))
		return account, errors.Join(ErrSaveFailed, err)
	}
	cfg.logger.Info("account saved",
		slog.String("service", cfg.serviceID),
		slog.String("username", account.Username))
	return account, nil
}
