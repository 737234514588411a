package aasahttp

import (
	"net/http"
	"time"

	"github.com/frantjc/aasa"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-Id"

// requestLogger puts a logger carrying the request's ID onto its
// context and logs the request once it has been handled.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		var (
			start = time.Now()
			ctx   = r.Context()
			log   = aasa.LoggerFrom(ctx).WithValues("requestID", requestID)
			ww    = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		)

		ww.Header().Set(headerRequestID, requestID)

		next.ServeHTTP(ww, r.WithContext(aasa.WithLogger(ctx, log)))

		log.V(1).Info("handled request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}
