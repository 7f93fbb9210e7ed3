package accounts

import "errors"

// Store errors.
var (
	// ErrNoSecret is returned when a store is created without an
	// encryption secret.
	ErrNoSecret = errors.New("accounts: secret required")

	// ErrNilAccount is returned when saving a nil account.
	ErrNilAccount = errors.New("accounts: nil account")

	// ErrMissingServiceID is returned when the service identifier is empty.
	ErrMissingServiceID = errors.New("accounts: service id required")

	// ErrNotFound is returned when an account does not exist.
	ErrNotFound = errors.New("accounts: not found")

	// ErrDecrypt is returned when a stored record cannot be opened,
	// typically because the secret changed or the data was tampered with.
	ErrDecrypt = errors.New("accounts: decryption failed")
)
