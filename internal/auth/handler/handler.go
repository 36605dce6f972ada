package handler

import (
	"errors"
	"net/http"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/auth/service"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/auth/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/sign-in", h.SignIn)
}

// SignIn exchanges the admin credentials for an access token.
// POST /api/v1/auth/admin/sign-in
func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	token, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpkit.Error(c, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.AuthResponse{AccessToken: token.AccessToken, ExpiresAt: token.ExpiresAt})
}
