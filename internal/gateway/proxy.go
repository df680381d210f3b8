package gateway

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"SameKart/internal/session"
	"SameKart/pkg/kit"
)

type ctxKey string

const (
	adminEmailKey ctxKey = "admin_email"
	adminRoleKey  ctxKey = "admin_role"
)

func AdminEmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(adminEmailKey).(string)
	return v, ok
}

// AuthJWT is the admin route guard: requests without a valid admin session
// token are denied before they reach a backend.
func AuthJWT(jwt *session.TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}

			claims, err := jwt.Parse(strings.TrimPrefix(authz, "Bearer "))
			if err != nil || claims.Email == "" || claims.Role != "admin" {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailKey, claims.Email)
			ctx = context.WithValue(ctx, adminRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InjectHeaders replaces any client-supplied identity headers with the
// verified session identity. Backends trust these headers, so they must
// never pass through from outside.
func InjectHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del("X-Admin-Email")
		r.Header.Del("X-Admin-Role")

		if email, ok := AdminEmailFromContext(r.Context()); ok && email != "" {
			r.Header.Set("X-Admin-Email", email)
		}
		if role, ok := r.Context().Value(adminRoleKey).(string); ok && role != "" {
			r.Header.Set("X-Admin-Role", role)
		}

		next.ServeHTTP(w, r)
	})
}

// StripIdentityHeaders guards the public routes: identity headers from the
// outside are dropped even where no guard runs.
func StripIdentityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del("X-Admin-Email")
		r.Header.Del("X-Admin-Role")
		next.ServeHTTP(w, r)
	})
}

func NewReverseProxy(target string, log *zap.Logger) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	p := httputil.NewSingleHostReverseProxy(u)
	p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		if log != nil {
			log.Warn("proxy error",
				zap.String("target", target),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
	}
	return p, nil
}
