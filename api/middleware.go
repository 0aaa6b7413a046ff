package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// IdentityMiddleware extracts the caller identity from the bearer token and
// stores it in the request context. Everything behind it requires a login.
func IdentityMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		ident, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func identityFrom(c *gin.Context) domain.Identity {
	return c.MustGet(identityKey).(domain.Identity)
}

// requireStaff aborts with 403 unless the caller is an agent or an
// administrator. Returns false when it aborted.
func requireStaff(c *gin.Context) bool {
	if !identityFrom(c).Role.Staff() {
		c.JSON(http.StatusForbidden, gin.H{"error": "requires agent or administrator privileges"})
		return false
	}
	return true
}

func requireAdmin(c *gin.Context) bool {
	if identityFrom(c).Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "requires administrator privileges"})
		return false
	}
	return true
}
