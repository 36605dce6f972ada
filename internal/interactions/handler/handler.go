package handler

import (
	"net/http"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/service"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves the admin transcript endpoints.
type Handler struct {
	svc *service.Admin
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Admin, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns chat transcripts joined with lead contact details.
// GET /api/v1/admin/interactions
func (h *Handler) List(c *gin.Context) {
	var req transport.ListInteractionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Overview returns dashboard counters.
// GET /api/v1/admin/overview
func (h *Handler) Overview(c *gin.Context) {
	result, err := h.svc.Overview(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
