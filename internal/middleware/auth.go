package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/datadrop/service/internal/auth"
	"github.com/datadrop/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// authorizedXSystemsKey is the context key for the x-systems the caller's
// API key resolves to.
const authorizedXSystemsKey contextKey = "authorizedXSystems"

// RequireAPIKey returns middleware that resolves the X-API-Key header
// against the user database and injects the authorized x-systems into the
// request context. Missing and unrecognized keys both get a generic 401 so
// the endpoint cannot be used to enumerate keys.
func RequireAPIKey(db auth.UserDatabase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := auth.APIKey(r.Header.Get("X-API-Key"))

			xSystems, err := db.Resolve(key)
			if err != nil {
				if errors.Is(err, auth.ErrMissingKey) || errors.Is(err, auth.ErrUnknownKey) {
					response.Unauthorized(w, err.Error())
					return
				}
				response.InternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), authorizedXSystemsKey, xSystems)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthorizedXSystems returns the x-systems resolved by RequireAPIKey, or
// nil when the request did not pass through it.
func AuthorizedXSystems(ctx context.Context) []string {
	xSystems, _ := ctx.Value(authorizedXSystemsKey).([]string)
	return xSystems
}
