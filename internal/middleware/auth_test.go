package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"auth-system/internal/model"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveIdentity(ctx context.Context, authorization string) (model.PublicUser, error) {
	args := m.Called(ctx, authorization)
	return args.Get(0).(model.PublicUser), args.Error(1)
}

func TestRequireAuth(t *testing.T) {
	user := model.PublicUser{ID: 3, Name: "Ana", Email: "ana@test.com"}

	t.Run("stores resolved user in context", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("ResolveIdentity", mock.Anything, "Bearer good").Return(user, nil)

		var got model.PublicUser
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = UserFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})

		mw := NewAuthMiddleware(resolver, func(http.ResponseWriter, *http.Request, error) {
			t.Fatal("error writer must not be called")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		mw.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, user, got)
		resolver.AssertExpectations(t)
	})

	t.Run("delegates failures to the error writer", func(t *testing.T) {
		resolver := new(mockResolver)
		resolver.On("ResolveIdentity", mock.Anything, "").Return(model.PublicUser{}, model.ErrUnauthorized)

		var gotErr error
		mw := NewAuthMiddleware(resolver, func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusUnauthorized)
		})

		rec := httptest.NewRecorder()
		mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next must not be called")
		})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.ErrorIs(t, gotErr, model.ErrUnauthorized)
	})
}

func TestUserFromContext_Missing(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}
