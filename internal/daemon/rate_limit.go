package daemon

import (
	"net/http"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	"github.com/radixd/radixd/internal/api"
	"github.com/radixd/radixd/internal/errors"
)

// rateLimitMiddleware refuses requests beyond the limiter's rate with 429 Too Many Requests.
func rateLimitMiddleware(logger hclog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(api.HeaderErrorType, string(api.RateLimited))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(limiter)))
			http.Error(w, errors.ErrRateLimited.Error(), http.StatusTooManyRequests)
			logger.Debug("Request rate limited", "method", r.Method, "path", r.URL.Path)
		})
	}
}

// retryAfterSeconds is the whole number of seconds until the limiter next admits a request, at least one.
func retryAfterSeconds(limiter *rate.Limiter) int {
	limit := float64(limiter.Limit())
	if limit <= 0 {
		return 1
	}

	secs := int(1/limit + 0.999)
	if secs < 1 {
		return 1
	}
	return secs
}
