package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivespace/drivespace/internal/model"
	"github.com/drivespace/drivespace/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*model.User{},
		byID:    map[string]*model.User{},
	}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ByID(id string) (*model.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) ByEmail(email string) (*model.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(repo, "test-secret", false, time.Hour), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register("Alice@Example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.AccountID)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	loggedIn, err := svc.Login("alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login("alice@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register("alice@example.com", "correct horse battery")
	require.NoError(t, err)

	_, err = svc.Register("alice@example.com", "another long password")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, repo := newTestAuthService()

	_, err := svc.Register("not-an-email", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register("alice@example.com", "short")
	assert.Error(t, err)

	assert.Empty(t, repo.byEmail, "no user is stored on validation failure")
}

func TestJWTRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()
	user := &model.User{ID: "user-1", Email: "alice@example.com"}

	token, err := svc.GenerateJWT(user)
	require.NoError(t, err)

	claims, err := svc.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	svc, _ := newTestAuthService()
	other := NewAuthService(newFakeUserRepo(), "different-secret", false, time.Hour)

	token, err := other.GenerateJWT(&model.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = svc.VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWTRejectsExpiredToken(t *testing.T) {
	expired := NewAuthService(newFakeUserRepo(), "test-secret", false, -time.Hour)

	token, err := expired.GenerateJWT(&model.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = expired.VerifyJWT(token)
	assert.Error(t, err)
}
