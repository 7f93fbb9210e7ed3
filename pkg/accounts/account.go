// Package accounts defines the account model produced by authentication
// flows and the persistence contract for storing accounts per service.
package accounts

import "maps"

// Account is the outcome of a successful authentication attempt:
// a username (possibly empty when no resolver was configured) plus
// every property the provider returned. Property values routinely
// include tokens and secrets; treat the whole bag as sensitive.
type Account struct {
	Username   string
	Properties map[string]string
}

// New creates an account with a defensive copy of the properties.
func New(username string, properties map[string]string) *Account {
	props := make(map[string]string, len(properties))
	maps.Copy(props, properties)
	return &Account{Username: username, Properties: props}
}

// Property returns the named property, or "" if absent.
func (a *Account) Property(key string) string {
	if a == nil {
		return ""
	}
	return a.Properties[key]
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	return New(a.Username, a.Properties)
}
