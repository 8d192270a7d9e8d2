package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// SecretHeader is the shared-secret header checked on gated routes.
const SecretHeader = "X-Secret"

// RequireSecret returns middleware that rejects requests whose X-Secret
// header does not match the configured shared secret.
func RequireSecret(secret string, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(SecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				logger.Warn("Rejected request with invalid secret",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}
}
