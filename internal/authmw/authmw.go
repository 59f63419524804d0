// Package authmw provides bearer token authentication for the research
// API routes.
package authmw

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const scheme = "Bearer "

// BearerToken returns middleware requiring an Authorization header with
// a bearer token equal to the configured value. Token comparison is
// constant-time; the scheme name is matched case-insensitively per RFC
// 9110. An empty configured token locks the protected routes rather
// than opening them.
func BearerToken(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				deny(w, `{"error":"api access is not configured"}`)
				return
			}

			auth := r.Header.Get("Authorization")
			if len(auth) < len(scheme) || !strings.EqualFold(auth[:len(scheme)], scheme) {
				deny(w, `{"error":"missing or malformed authorization header"}`)
				return
			}

			got := []byte(strings.TrimSpace(auth[len(scheme):]))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				deny(w, `{"error":"invalid token"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, body string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(body + "\n"))
}
