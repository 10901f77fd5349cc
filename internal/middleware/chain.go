package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// MaxBodyBytes is the request body cap applied by Chain.
const MaxBodyBytes = 64 * 1024

// Chain wraps the handler with the outer middleware stack.
// Order: CORS → RequestID → Logging → APIKey → MaxBytes → Timeout → router
//
// Metrics is installed on the router itself so it can read the matched
// route pattern.
func Chain(handler http.Handler, log *zap.Logger, apiKey string, timeout time.Duration) http.Handler {
	h := handler
	h = Timeout(timeout)(h)
	h = MaxBytes(MaxBodyBytes)(h)
	h = APIKey(apiKey)(h)
	h = Logging(log)(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}

// Timeout bounds the handler with http.TimeoutHandler and answers expired
// requests with a JSON 503. Handlers that finish in time keep their own
// Content-Type.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, d, `{"error":"request timeout"}`)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			th.ServeHTTP(w, r)
		})
	}
}
