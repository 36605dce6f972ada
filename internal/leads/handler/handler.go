package handler

import (
	"context"
	"net/http"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/management"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/registration"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/session"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/apperr"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidLeadID    = "invalid lead id"
)

// Registrar resolves a registration form to a lead.
type Registrar interface {
	Register(ctx context.Context, sub domain.Submission) registration.Result
}

// Greeter produces the assistant's opening message.
type Greeter interface {
	Welcome(name string) string
}

// Handler serves lead registration and the admin lead endpoints.
type Handler struct {
	registrar Registrar
	mgmt      *management.Service
	sessions  *session.Codec
	greeter   Greeter
	val       *validator.Validator
}

func New(registrar Registrar, mgmt *management.Service, sessions *session.Codec, greeter Greeter, val *validator.Validator) *Handler {
	return &Handler{registrar: registrar, mgmt: mgmt, sessions: sessions, greeter: greeter, val: val}
}

// Register upserts the visitor's lead and opens a chat session.
// POST /api/v1/leads/register
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	res := h.registrar.Register(c.Request.Context(), domain.Submission{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Profile: domain.Profile{
			Location:         req.Location,
			Program:          req.Program,
			PreferredCollege: req.PreferredCollege,
			PreferredCourse:  req.PreferredCourse,
		},
	})

	token, err := h.sessions.Save(session.Session{
		LeadRef: res.Ref,
		Name:    res.Lead.Name,
		Phone:   res.Lead.Phone,
	})
	if err != nil {
		httpkit.HandleError(c, apperr.Internal("could not open session", err))
		return
	}

	lead := management.ToLeadResponse(res.Lead)
	lead.ID = res.Ref.String()

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	httpkit.JSON(c, status, transport.RegisterLeadResponse{
		Lead:           lead,
		SessionToken:   token,
		Persisted:      res.Persisted,
		Created:        res.Created,
		WelcomeMessage: h.greeter.Welcome(res.Lead.Name),
	})
}

// List returns a page of leads, newest first.
// GET /api/v1/admin/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.mgmt.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns a single lead.
// GET /api/v1/admin/leads/:id
func (h *Handler) Get(c *gin.Context) {
	var param transport.LeadIDParam
	if err := c.ShouldBindUri(&param); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}
	id, err := uuid.Parse(param.ID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	result, err := h.mgmt.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Deduplicate merges leads that share a phone number.
// POST /api/v1/admin/leads/deduplicate?dryRun=true&async=true
func (h *Handler) Deduplicate(c *gin.Context) {
	var req transport.DeduplicateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.mgmt.Deduplicate(c.Request.Context(), httpkit.GetIdentity(c).Subject(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	if result.Queued {
		httpkit.JSON(c, http.StatusAccepted, result)
		return
	}
	httpkit.OK(c, result)
}
