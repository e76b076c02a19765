package handler

import (
	"net/http"

	"taleschool_backend/internal/attendance/service"
	"taleschool_backend/internal/attendance/transport"
	"taleschool_backend/internal/tenant"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid attendance id"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Mark(c *gin.Context) {
	schoolID, identity, ok := scope(c)
	if !ok {
		return
	}

	var req transport.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Mark(c.Request.Context(), schoolID, identity.UserID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, resp)
}

func (h *Handler) BulkMark(c *gin.Context) {
	schoolID, identity, ok := scope(c)
	if !ok {
		return
	}

	var req transport.BulkMarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.BulkMark(c.Request.Context(), schoolID, identity.UserID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, resp)
}

func (h *Handler) List(c *gin.Context) {
	schoolID, ok := tenant.MustEffectiveSchoolID(c)
	if !ok {
		return
	}

	var req transport.ListAttendanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	records, meta, err := h.svc.List(c.Request.Context(), schoolID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, httpkit.ListEnvelope{Data: records, Meta: meta})
}

func (h *Handler) Stats(c *gin.Context) {
	schoolID, ok := tenant.MustEffectiveSchoolID(c)
	if !ok {
		return
	}

	var req transport.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Stats(c.Request.Context(), schoolID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) Get(c *gin.Context) {
	schoolID, ok := tenant.MustEffectiveSchoolID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.svc.Get(c.Request.Context(), id, schoolID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) Update(c *gin.Context) {
	schoolID, ok := tenant.MustEffectiveSchoolID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, schoolID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	schoolID, ok := tenant.MustEffectiveSchoolID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, schoolID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "attendance record deleted successfully"})
}

func scope(c *gin.Context) (uuid.UUID, httpkit.Identity, bool) {
	schoolID, ok := tenant.MustEffectiveSchoolID(c)
	if !ok {
		return uuid.Nil, httpkit.Identity{}, false
	}
	identity, ok := httpkit.MustGetIdentity(c)
	if !ok {
		return uuid.Nil, httpkit.Identity{}, false
	}
	return schoolID, identity, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
