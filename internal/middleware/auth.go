package middleware

import (
	"context"
	"net/http"

	"auth-system/internal/model"
)

type identityResolver interface {
	ResolveIdentity(ctx context.Context, authorization string) (model.PublicUser, error)
}

// ErrorWriter renders a failed resolution. The router passes handler.WriteError.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type contextKey string

const userContextKey contextKey = "auth_user"

type AuthMiddleware struct {
	resolver identityResolver
	onError  ErrorWriter
}

func NewAuthMiddleware(resolver identityResolver, onError ErrorWriter) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, onError: onError}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolver.ResolveIdentity(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			m.onError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromContext(ctx context.Context) (model.PublicUser, bool) {
	user, ok := ctx.Value(userContextKey).(model.PublicUser)
	return user, ok
}
