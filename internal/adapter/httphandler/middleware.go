package httphandler

import (
	"context"
	"net/http"

	"github.com/sanjibtex/storefront/internal/core/domain"
)

const (
	userIDHeader    = "X-User-Id"
	userEmailHeader = "X-User-Email"
	userRoleHeader  = "X-User-Role"
)

type identityCtxKey struct{}

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// WithIdentity reads the caller identity set by the authenticating
// proxy. Requests without the user header stay anonymous.
func WithIdentity(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity := &domain.Identity{
			UserID: userID,
			Email:  r.Header.Get(userEmailHeader),
			Role:   domain.Role(r.Header.Get(userRoleHeader)),
		}
		ctx := context.WithValue(r.Context(), identityCtxKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hf)
}

// identityFromCtx returns nil for anonymous requests.
func identityFromCtx(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(identityCtxKey{}).(*domain.Identity)
	return identity
}

func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := identityFromCtx(r.Context())
		if !identity.IsAuthenticated() {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !identity.IsAdmin() {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
