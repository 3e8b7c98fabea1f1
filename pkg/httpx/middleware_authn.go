package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/aurora/pkg/jwtx"
	"github.com/aussiebroadwan/aurora/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token and injects its claims. The
// contextual logger is tagged with the caller and tenant.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			switch {
			case errors.Is(err, jwtx.ErrExpired):
				writeBearerError(w, "token expired")
				return
			case err != nil:
				writeBearerError(w, "token verification failed")
				log.Warn("access token rejected", "err", err)
				return
			}

			ctx = ContextWithClaims(ctx, claims)
			ctx = slogx.With(ctx, "user_id", claims.Subject, "tenant_id", claims.TenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential of an Authorization header using the
// Bearer scheme. The scheme name is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="aurora", error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthorized",
		"error_description": desc,
	})
}
