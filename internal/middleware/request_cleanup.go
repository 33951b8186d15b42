package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest makes sure every request body is fully read and
// closed after the handler ran. Handlers here often bail out before
// touching the body (session check, id parse), which would otherwise leave
// the connection unusable for keep-alive reuse.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		})
	}
}
