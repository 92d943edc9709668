package middleware

import (
	"net/http"

	"github.com/procat-rse/procatsrv/internal/common"
)

// LoadContext stores the requesting user in the context. Authentication
// happens upstream (SSO proxy); the trusted username arrives in a header.
func LoadContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get("X-ProCat-User")
		r = r.WithContext(common.SetUserInContext(r.Context(), username))
		next.ServeHTTP(w, r)
	})
}
