package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/wallet-service/internal/api/httpx"
	"github.com/baharkarakas/wallet-service/internal/auth"
	"github.com/baharkarakas/wallet-service/internal/metrics"
)

// UserAuth admits requests carrying a valid user token and stores its
// subject as the acting user.
func UserAuth(tokens *auth.UserTokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				deny(w, r, "user", "missing bearer token", nil)
				return
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				deny(w, r, "user", "invalid token", err)
				return
			}
			ctx := WithUser(r.Context(), UserCtx{UserID: claims.Subject, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InternalAuth admits only tokens minted with the internal secret. It sets
// no user: internal handlers read the target user from the body.
func InternalAuth(tokens *auth.InternalTokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				deny(w, r, "internal", "missing bearer token", nil)
				return
			}
			if _, err := tokens.Verify(raw); err != nil {
				deny(w, r, "internal", "invalid token", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	ah := r.Header.Get("Authorization")
	if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(ah[len("Bearer "):])
	return tok, tok != ""
}

func deny(w http.ResponseWriter, r *http.Request, authCtx, msg string, err error) {
	metrics.AuthFailures.WithLabelValues(authCtx).Inc()
	if err != nil {
		slog.Debug("token rejected", "context", authCtx, "path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()), "err", err)
	}
	httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, msg, nil)
}
