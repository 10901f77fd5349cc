package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var allowedMethods = []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

// CORS allows any origin. A request carrying an Origin gets that origin
// echoed back together with Allow-Credentials, since browsers reject the
// "*" wildcard on credentialed requests. Preflights are answered with 204.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if origin := r.Header.Get("Origin"); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		h.Set("Access-Control-Allow-Methods", allowMethods(r.Header.Get("Access-Control-Request-Method")))

		if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
			h.Set("Access-Control-Allow-Headers", requested)
		} else {
			h.Set("Access-Control-Allow-Headers", "*")
		}
		h.Set("Access-Control-Expose-Headers", "X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowMethods lists the standard methods plus whatever method a preflight
// asks for, so any method is permitted.
func allowMethods(requested string) string {
	methods := allowedMethods
	if requested != "" && !lo.Contains(methods, strings.ToUpper(requested)) {
		methods = append(slices.Clone(methods), requested)
	}
	return strings.Join(methods, ", ")
}
