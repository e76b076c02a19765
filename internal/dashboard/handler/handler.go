package handler

import (
	"taleschool_backend/internal/dashboard/service"
	"taleschool_backend/internal/tenant"
	"taleschool_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Stats returns role-dependent counts. The ownership guard has already run,
// so the effective school id is the resolved subdomain school (verified to
// match the identity) or the identity's own school; super admins reaching the
// platform domain have no school scope and get platform totals.
func (h *Handler) Stats(c *gin.Context) {
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return
	}

	var schoolID *uuid.UUID
	if effective, ok := tenant.EffectiveSchoolID(c); ok {
		schoolID = &effective
	}

	resp, err := h.svc.Stats(c.Request.Context(), identity.Role, schoolID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
