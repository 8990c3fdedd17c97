// Package auth resolves opaque API keys to the set of x-systems they may act as.
package auth

import (
	"errors"
	"slices"
)

// AdminXSystem is the reserved grant that authorizes every x-system,
// including listing all of them.
const AdminXSystem = "admin"

// Resolution errors. Both map to a 401 at the HTTP layer; the distinct
// messages are generic on purpose so that callers cannot probe which
// keys exist.
var (
	ErrMissingKey = errors.New("Missing authentication header X-API-Key.")
	ErrUnknownKey = errors.New("The provided API Key is not recognized.")
)

// APIKey is an opaque bearer credential. It is only ever compared for
// equality and must never appear in logs or error messages.
type APIKey string

// String returns a redacted representation so that accidental logging
// of a key does not leak the secret.
func (k APIKey) String() string {
	return "**********"
}

// UserDatabase maps each API key to the x-systems it is allowed to act as.
// It is loaded once from configuration at startup and never mutated;
// rotating a key requires a restart.
type UserDatabase map[APIKey][]string

// Resolve returns the x-systems the given key is authorized for.
func (db UserDatabase) Resolve(key APIKey) ([]string, error) {
	if key == "" {
		return nil, ErrMissingKey
	}
	xSystems, ok := db[key]
	if !ok {
		return nil, ErrUnknownKey
	}
	return xSystems, nil
}

// IsAuthorized reports whether the resolved grants cover the given
// x-system. A key holding the reserved admin grant covers everything.
func IsAuthorized(xSystem string, authorized []string) bool {
	return slices.Contains(authorized, xSystem) || slices.Contains(authorized, AdminXSystem)
}
