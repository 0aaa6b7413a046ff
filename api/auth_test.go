package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/aerodrome/internal/auth"
	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAuthHandler_login(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	assert.NoError(t, err)
	user := &domain.User{ID: 3, Role: domain.RolePilot, Username: "jdupont", PasswordHash: hash}

	newHandler := func(users *MockUserRepository) *AuthHandler {
		return NewAuthHandler(auth.NewAuthenticator(users, "test-secret", time.Hour))
	}

	t.Run("valid credentials return a token", func(t *testing.T) {
		users := &MockUserRepository{}
		handler := newHandler(users)

		c, w := newBookingContext(t, pilotIdent, "POST", "/login", loginRequest{Username: "jdupont", Password: "correct horse"})
		users.On("GetByUsername", c.Request.Context(), "jdupont").Return(user, nil)

		handler.login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp tokenResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, int64(3), resp.UserID)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		users := &MockUserRepository{}
		handler := newHandler(users)

		c, w := newBookingContext(t, pilotIdent, "POST", "/login", loginRequest{Username: "jdupont", Password: "nope"})
		users.On("GetByUsername", c.Request.Context(), "jdupont").Return(user, nil)

		handler.login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
