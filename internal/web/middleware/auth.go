package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/code-and-relax/studio/internal/config"
)

// APIKeyAuth validates the X-API-Key header against the configured keys.
// With RequireAPIKey disabled every request passes through.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				slog.Warn("auth: missing API key", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				http.Error(w, `{"error":"missing API key","code":"AUTH001"}`, http.StatusUnauthorized)
				return
			}

			if !isValidAPIKey(apiKey, cfg.APIKeys) {
				slog.Warn("auth: invalid API key", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				http.Error(w, `{"error":"invalid API key","code":"AUTH002"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isValidAPIKey compares the key against every configured key in constant
// time, so the comparison cost does not leak which key matched.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, candidate := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(candidate))
	}
	return valid == 1
}
