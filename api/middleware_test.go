package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(token string) (domain.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func TestIdentityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(verifier TokenVerifier) *gin.Engine {
		router := gin.New()
		router.GET("/ping", IdentityMiddleware(verifier), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": identityFrom(c).ID})
		})
		return router
	}

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(&MockTokenVerifier{}).ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		newRouter(&MockTokenVerifier{}).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		verifier := &MockTokenVerifier{}
		verifier.On("Verify", "bad-token").Return(domain.Identity{}, errors.New("invalid token"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		newRouter(verifier).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		verifier := &MockTokenVerifier{}
		verifier.On("Verify", "good-token").Return(domain.Identity{ID: 3, Role: domain.RolePilot}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		newRouter(verifier).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id": 3}`, w.Body.String())
	})
}
