package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
)

// AdminToken guards operator endpoints with a shared bearer token. An empty
// token disables the check, which is how local development runs.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		want := []byte(token)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			header := r.Header.Get("Authorization")
			if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}
			if subtle.ConstantTimeCompare([]byte(header[len(bearerPrefix):]), want) != 1 {
				writeUnauthorized(w, r, "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthorized is local to avoid an import cycle with the response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	problem := models.NewUnauthorized(GetRequestID(r.Context()), detail)
	problem.Instance = r.URL.Path
	w.Header().Set("WWW-Authenticate", `Bearer realm="aquasentinel"`)
	problem.Write(w)
}
