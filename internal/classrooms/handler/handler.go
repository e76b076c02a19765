package handler

import (
	"net/http"

	"taleschool_backend/internal/classrooms/service"
	"taleschool_backend/internal/classrooms/transport"
	"taleschool_backend/internal/tenant"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid classroom id"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Create(c *gin.Context) {
	schoolID, ok := tenant.MustEffectiveSchoolID(c)
	if !ok {
		return
	}

	var req transport.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), schoolID, req)
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

	var req transport.ListClassroomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	classrooms, meta, err := h.svc.List(c.Request.Context(), schoolID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, httpkit.ListEnvelope{Data: classrooms, Meta: meta})
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

	var req transport.UpdateClassroomRequest
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

	httpkit.OK(c, gin.H{"message": "classroom deleted successfully"})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
