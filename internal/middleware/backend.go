package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
)

type contextKey string

const (
	baseURLKey  contextKey = "backendBase"
	overrideKey contextKey = "backendOverride"
)

// BackendQueryParam overrides the backend for one request: "local" or an http(s) URL.
// Only values listed in config.AllowedOverrides are honoured.
const BackendQueryParam = "backend"

// Backend resolves the backend base URL from the request host and an allowed ?backend=
// and stores it in the context.
func Backend(cfg *config.Config) func(http.Handler) http.Handler {
	return backend(cfg, true)
}

// DefaultBackend resolves the backend from the request host only. Login and admin routes use it.
func DefaultBackend(cfg *config.Config) func(http.Handler) http.Handler {
	return backend(cfg, false)
}

func backend(cfg *config.Config, allowOverride bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			override := ""
			if q := r.URL.Query().Get(BackendQueryParam); allowOverride && config.OverrideAllowed(q, cfg) {
				override = q
			}
			ctx := context.WithValue(r.Context(), baseURLKey, config.ResolveBaseURL(hostname(r.Host), override, cfg))
			ctx = context.WithValue(ctx, overrideKey, override)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BaseURL returns the backend base URL chosen for the request.
func BaseURL(ctx context.Context) string {
	base, _ := ctx.Value(baseURLKey).(string)
	return base
}

// Override returns the ?backend= value honoured for the request, or "".
func Override(ctx context.Context) string {
	o, _ := ctx.Value(overrideKey).(string)
	return o
}

func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
