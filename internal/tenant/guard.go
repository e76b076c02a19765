package tenant

import (
	"net/http"

	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// SchoolGuard enforces tenant ownership after authentication. Super admins
// always pass. Everyone else must belong to a school, and when the hostname
// resolved a school it must be the same one. The guard records the effective
// school id for the resource service: the resolved school when present,
// otherwise the identity's own school.
func SchoolGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpkit.GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		resolvedID, resolved := ResolvedSchoolID(c)

		if id.Role == roles.SuperAdmin {
			if resolved {
				c.Set(ContextEffectiveSchoolIDKey, resolvedID)
			}
			c.Next()
			return
		}

		if id.SchoolID == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user does not belong to any school"})
			return
		}

		if resolved && resolvedID != *id.SchoolID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied: user does not belong to this school"})
			return
		}

		if resolved {
			c.Set(ContextEffectiveSchoolIDKey, resolvedID)
		} else {
			c.Set(ContextEffectiveSchoolIDKey, *id.SchoolID)
		}
		c.Next()
	}
}
