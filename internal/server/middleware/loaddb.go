package middleware

import (
	"net/http"

	"github.com/procat-rse/procatsrv/internal/db"
)

// LoadDB acquires a database connection for the request and releases it
// when the handler returns.
func LoadDB(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := db.ConnCtx(r.Context())
		defer db.DB(ctx).Close(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
