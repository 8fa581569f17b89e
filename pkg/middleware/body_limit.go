package middleware

import (
	"net/http"

	apperrors "foamparty/pkg/errors"
	httputil "foamparty/pkg/http"
)

// MaxRequestSize rejects bodies larger than limit bytes. Declared lengths are
// rejected up front; undeclared ones fail when the handler reads past limit.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.PayloadTooLarge(limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
