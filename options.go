package authkit

import (
	"log/slog"
	"time"

	"github.com/authkit-go/authkit/pkg/accounts"
	"github.com/authkit-go/authkit/pkg/logger"
)

// Option configures a Run call.
type Option func(*runConfig)

type runConfig struct {
	logger    *slog.Logger
	store     accounts.Store
	serviceID string
	timeout   time.Duration
}

func newRunConfig(opts ...Option) runConfig {
	cfg := runConfig{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the diagnostic log sink for the run.
func WithLogger(log *slog.Logger) Option {
	return func(cfg *runConfig) {
		if log != nil {
			cfg.logger = log
		}
	}
}

// WithStore persists the authorized account under serviceID before Run
// returns.
func WithStore(store accounts.Store, serviceID string) Option {
	return func(cfg *runConfig) {
		cfg.store = store
		cfg.serviceID = serviceID
	}
}

// WithTimeout bounds the whole attempt, including the user's time on
// the provider's authorization page.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *runConfig) {
		cfg.timeout = timeout
	}
}
