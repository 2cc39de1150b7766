package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogger tags each request with a short id, echoes it in the
// X-Request-ID header, and logs the request once the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()[:8]
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s | %s | from %s", id, r.Method, r.URL.RequestURI(), time.Since(start), r.RemoteAddr)
	})
}
