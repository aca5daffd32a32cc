package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware rejects requests without a valid bearer token for a
// whitelisted email. A nil verifier disables the check.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if v == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				deny(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, ErrNotWhitelisted) {
					slog.Warn("rejected non-whitelisted user", "path", r.URL.Path)
					deny(w, http.StatusForbidden, "user is not allowed")

					return
				}

				deny(w, http.StatusUnauthorized, "invalid token")

				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
