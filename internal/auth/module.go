// Package auth provides the operator authentication module.
package auth

import (
	"github.com/ReachRyt-Services/collegeSeraBot/internal/auth/handler"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/auth/service"
	apphttp "github.com/ReachRyt-Services/collegeSeraBot/internal/http"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"
)

// Module is the auth module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(cfg config.AdminConfig, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: handler.New(service.New(cfg, log), val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
