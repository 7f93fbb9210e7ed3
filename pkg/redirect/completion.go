package redirect

import (
	"sync"
	"sync/atomic"

	"github.com/authkit-go/authkit/pkg/accounts"
)

// Result is the terminal outcome of an authentication attempt.
// Exactly one of Account or Err is set; cancellation is reported as
// an Err matching ErrCancelled.
type Result struct {
	Account *accounts.Account
	Err     error
}

// Completion delivers a single terminal outcome per attempt. The first
// Complete call wins; every later call is dropped. Safe for concurrent
// use from navigation-event and network-response paths.
type Completion struct {
	once      sync.Once
	completed atomic.Bool
	done      chan Result
}

// NewCompletion creates an unfired completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan Result, 1)}
}

// Complete fires the outcome. Returns true if this call won, false if
// the attempt already completed.
func (c *Completion) Complete(account *accounts.Account, err error) bool {
	won := false
	c.once.Do(func() {
		c.completed.Store(true)
		c.done <- Result{Account: account, Err: err}
		close(c.done)
		won = true
	})
	return won
}

// Done returns the channel the single outcome is delivered on.
func (c *Completion) Done() <-chan Result {
	return c.done
}

// Completed reports whether an outcome has been raised.
func (c *Completion) Completed() bool {
	return c.completed.Load()
}
