package chi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// exemptPaths skip authentication so probes and scrapers work without
// credentials.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware validates "Authorization: Bearer <key>" against
// the configured API keys. With no keys configured every request passes
// through, which is the local development mode.
func BearerAuthMiddleware(apiKeys []string, logger *zap.Logger) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(validKeys) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			if _, exempt := exemptPaths[r.URL.Path]; exempt {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, prefix) {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing or malformed Authorization header")
				return
			}

			if _, ok := validKeys[strings.TrimPrefix(authz, prefix)]; !ok {
				logger.Warn("Rejected request with invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr))
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
