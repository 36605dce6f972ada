// Package chat provides the visitor chat module.
package chat

import (
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/handler"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/service"
	apphttp "github.com/ReachRyt-Services/collegeSeraBot/internal/http"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"
)

// Module is the chat module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the chat handler to its model service and turn recorder.
func NewModule(svc *service.Service, recorder ports.TurnRecorder, val *validator.Validator) *Module {
	return &Module{handler: handler.New(svc, recorder, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "chat"
}

// RegisterRoutes mounts chat routes on the visitor group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Visitor.POST("/chat", ctx.PublicRateLimiter.RateLimit(), m.handler.Send)
}

var _ apphttp.Module = (*Module)(nil)
