package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now().UTC()
		next.ServeHTTP(w, r)
		logger.Printf("%s %s from=%s rid=%s dur=%s",
			r.Method, r.URL.Path, r.RemoteAddr, w.Header().Get("X-Request-ID"), time.Since(start))
	})
}

// requestIDMiddleware tags every request with an id so a swipe can be traced
// from gateway log line to caller. Honors an id supplied by the client.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}
