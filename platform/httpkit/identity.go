// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated user's identity as seen by handlers.
// SchoolID is nil only for platform-level (super admin) accounts.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Name     string
	Role     string
	SchoolID *uuid.UUID
}

// HasRole checks if the identity holds the given role.
func (i Identity) HasRole(role string) bool {
	return i.Role == role
}

// GetIdentity extracts the Identity from a Gin context.
// The second return is false when no authenticated identity is present.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := value.(Identity)
	return id, ok
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized.
func MustGetIdentity(c *gin.Context) (Identity, bool) {
	id, ok := GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return Identity{}, false
	}
	return id, true
}
