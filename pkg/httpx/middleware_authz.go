package httpx

import (
	"net/http"
	"slices"
)

// RequirePermission the caller must hold at least one of the listed permissions.
func RequirePermission(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := permissionsFromCtx(r.Context())
			for _, p := range required {
				if slices.Contains(have, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeForbidden(w, required...)
		})
	}
}

// RequireAllPermissions the caller must hold every listed permission.
func RequireAllPermissions(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := permissionsFromCtx(r.Context())
			for _, p := range required {
				if !slices.Contains(have, p) {
					writeForbidden(w, required...)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, required ...string) {
	desc := "missing permission"
	if len(required) > 0 {
		desc += " " + required[0]
		for _, p := range required[1:] {
			desc += " or " + p
		}
	}
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "forbidden",
		"error_description": desc,
	})
}
