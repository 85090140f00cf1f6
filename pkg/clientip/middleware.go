package clientip

import "net/http"

// New returns middleware storing the client IP in the request context.
func New(trustedHeaders ...string) func(http.Handler) http.Handler {
	headers := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h != "" {
			headers = append(headers, http.CanonicalHeaderKey(h))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithContext(r.Context(), FromRequest(r, headers...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
