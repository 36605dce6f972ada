package handler

import (
	"context"
	"net/http"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/service"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/session"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/sanitize"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgMissingSession   = "missing session"
)

// Responder answers a chat message.
type Responder interface {
	Respond(ctx context.Context, history []service.Turn, message string, mode service.Mode) (service.Reply, error)
}

// Handler serves the visitor chat endpoint.
type Handler struct {
	svc      Responder
	recorder ports.TurnRecorder
	val      *validator.Validator
}

func New(svc Responder, recorder ports.TurnRecorder, val *validator.Validator) *Handler {
	return &Handler{svc: svc, recorder: recorder, val: val}
}

// Send forwards a message to the assistant and records the turn.
// POST /api/v1/chat
func (h *Handler) Send(c *gin.Context) {
	sess, ok := session.FromContext(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, msgMissingSession, nil)
		return
	}

	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	req.Message = sanitize.Text(req.Message)
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	history := make([]service.Turn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, service.Turn{Role: turn.Role, Text: turn.Text})
	}

	ctx := c.Request.Context()
	reply, err := h.svc.Respond(ctx, history, req.Message, service.ParseMode(req.Mode))
	if httpkit.HandleError(c, err) {
		return
	}

	tags := h.recorder.RecordTurn(ctx, ports.Visitor{Ref: sess.LeadRef, Phone: sess.Phone}, req.Message, reply.Text)

	sources := make([]transport.Source, 0, len(reply.Sources))
	for _, src := range reply.Sources {
		sources = append(sources, transport.Source{URI: src.URI, Title: src.Title})
	}
	httpkit.OK(c, transport.ChatResponse{
		Text:             reply.Text,
		Sources:          sources,
		Mode:             string(reply.Mode),
		DetectedColleges: tags,
	})
}
