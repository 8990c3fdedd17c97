package middleware

import (
	"net/http"

	"github.com/datadrop/service/internal/response"
)

// LimitConcurrency caps the number of requests a route serves at once.
// The semaphore acquire is non-blocking: when all slots are taken the
// request is rejected with 503 instead of queueing, so a burst of large
// uploads cannot pile up unbounded buffered bodies in memory.
func LimitConcurrency(limit int) func(http.Handler) http.Handler {
	semaphore := make(chan struct{}, limit)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
				next.ServeHTTP(w, r)
			default:
				response.ServiceUnavailable(w, "too many concurrent requests")
			}
		})
	}
}
