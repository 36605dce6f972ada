// Package interactions provides the chat transcript bounded context module.
package interactions

import (
	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/handler"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/service"
	apphttp "github.com/ReachRyt-Services/collegeSeraBot/internal/http"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"
)

// Module is the interactions bounded context module implementing http.Module.
type Module struct {
	repo    *repository.Repository
	logger  *service.Logger
	handler *handler.Handler
}

// LeadDirectory is what the module reads from the leads module.
type LeadDirectory interface {
	service.LeadCounter
	service.LeadLocator
}

// NewModule wires the interaction store, logger and admin endpoints.
func NewModule(db repository.DB, tagger service.Tagger, leads LeadDirectory, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(db)
	return &Module{
		repo:    repo,
		logger:  service.NewLogger(repo, tagger, leads, log),
		handler: handler.New(service.NewAdmin(repo, leads), val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "interactions"
}

// Logger returns the chat turn recorder for other modules.
func (m *Module) Logger() *service.Logger {
	return m.logger
}

// Repository returns the repository for adapters that need direct access.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts interactions routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/interactions", m.handler.List)
	ctx.Admin.GET("/overview", m.handler.Overview)
}

var _ apphttp.Module = (*Module)(nil)
