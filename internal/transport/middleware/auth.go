package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gigfrog/backend/pkg/ctxutil"
)

type identityResolver interface {
	Resolve(ctx context.Context, token string) (ctxutil.Identity, error)
}

// Auth exchanges a bearer token for a caller identity. Requests without a
// token pass through anonymously; services decide per operation whether an
// identity is required.
func Auth(resolver identityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			identity, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
