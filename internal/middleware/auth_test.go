package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivespace/drivespace/internal/ctxkeys"
	"github.com/drivespace/drivespace/internal/model"
	"github.com/drivespace/drivespace/internal/repository"
	"github.com/drivespace/drivespace/internal/service"
)

type stubUserRepo struct {
	user *model.User
}

func (r *stubUserRepo) Create(user *model.User) error { return nil }

func (r *stubUserRepo) ByID(id string) (*model.User, error) {
	if r.user != nil && r.user.ID == id {
		copied := *r.user
		return &copied, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepo) ByEmail(email string) (*model.User, error) {
	if r.user != nil && r.user.Email == email {
		copied := *r.user
		return &copied, nil
	}
	return nil, repository.ErrUserNotFound
}

func authStack(user *model.User) (*service.AuthService, func(http.Handler) http.Handler) {
	repo := &stubUserRepo{user: user}
	authService := service.NewAuthService(repo, "test-secret", false, time.Hour)
	return authService, AuthMiddleware(authService, service.NewUserService(repo))
}

func contextUserCapture(out **model.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*out = ctxkeys.User(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareAttachesUser(t *testing.T) {
	user := &model.User{ID: "user-1", Email: "alice@example.com", PasswordHash: "secret-hash"}
	authService, mw := authStack(user)

	token, err := authService.GenerateJWT(user)
	require.NoError(t, err)

	var got *model.User
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()

	mw(contextUserCapture(&got)).ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	assert.Empty(t, got.PasswordHash, "hash never enters the request context")
}

func TestAuthMiddlewareWithoutCookie(t *testing.T) {
	_, mw := authStack(&model.User{ID: "user-1"})

	var got *model.User
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	rec := httptest.NewRecorder()

	mw(contextUserCapture(&got)).ServeHTTP(rec, req)

	assert.Nil(t, got)
	assert.Equal(t, http.StatusOK, rec.Code, "request continues unauthenticated")
}

func TestAuthMiddlewareClearsBadToken(t *testing.T) {
	_, mw := authStack(&model.User{ID: "user-1"})

	var got *model.User
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()

	mw(contextUserCapture(&got)).ServeHTTP(rec, req)

	assert.Nil(t, got)
	require.NotEmpty(t, rec.Result().Cookies())
	cleared := rec.Result().Cookies()[0]
	assert.Equal(t, "auth_token", cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))
}

func TestRequireAuth(t *testing.T) {
	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/files", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "user-1"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
