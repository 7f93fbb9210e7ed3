package accounts

import "context"

// Store persists accounts keyed by service identifier and username.
// Implementations must encrypt account data at rest; the properties
// bag carries consumer secrets and access tokens.
type Store interface {
	// List returns all accounts stored for a service.
	List(ctx context.Context, serviceID string) ([]*Account, error)

	// Save inserts or replaces the account for (serviceID, username).
	Save(ctx context.Context, serviceID string, account *Account) error

	// Delete removes the account for (serviceID, username).
	// Returns ErrNotFound if no such account exists.
	Delete(ctx context.Context, serviceID, username string) error
}
