// Package tenant implements hostname-based tenant resolution and the
// cross-tenant ownership guard. Every request passes the resolver first;
// tenant-scoped routes additionally run the guard after authentication.
package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextSchoolKey is the gin context key for the resolved school context.
	ContextSchoolKey = "tenantSchool"
	// ContextEffectiveSchoolIDKey is the gin context key for the school id a
	// resource service must scope its queries by. Set by SchoolGuard.
	ContextEffectiveSchoolIDKey = "effectiveSchoolID"
)

// School is the tenant context attached to a request after resolution.
// It is written once by the resolver and read-only downstream.
type School struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Slug   string    `json:"slug"`
	Active bool      `json:"isActive"`
}

// ResolvedSchool returns the school resolved from the request hostname,
// or false when the request targets the platform (no subdomain).
func ResolvedSchool(c *gin.Context) (School, bool) {
	value, ok := c.Get(ContextSchoolKey)
	if !ok {
		return School{}, false
	}
	school, ok := value.(School)
	return school, ok
}

// ResolvedSchoolID returns the id of the hostname-resolved school, if any.
func ResolvedSchoolID(c *gin.Context) (uuid.UUID, bool) {
	school, ok := ResolvedSchool(c)
	if !ok {
		return uuid.Nil, false
	}
	return school.ID, true
}

// EffectiveSchoolID returns the school id resource services must filter by.
// Present only after SchoolGuard has run and found a school scope.
func EffectiveSchoolID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextEffectiveSchoolIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// MustEffectiveSchoolID returns the effective school id or aborts with 400.
// Super admins hitting a tenant-scoped route from the platform domain have no
// school scope; they must use a school subdomain.
func MustEffectiveSchoolID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := EffectiveSchoolID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "school context required"})
		return uuid.Nil, false
	}
	return id, true
}
