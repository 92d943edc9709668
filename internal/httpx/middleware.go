package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/common"
	"github.com/rs/zerolog/log"
)

// RequestLogger attaches a request-scoped zerolog logger and request ID to
// the context and logs one line per request on completion.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get("X-Request-ID")
		if requestId == "" {
			requestId = uuid.New().String()
		}
		logger := log.Logger.With().Str("request_id", requestId).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = common.SetRequestIdInContext(ctx, requestId)
		w.Header().Set("X-Request-ID", requestId)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
