package http

import (
	"context"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/gin-gonic/gin"
)

// RouterConfig is the slice of configuration the router reads: listen and
// CORS settings, plus the JWT secret that guards the admin group.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs /api/health/ready. The API passes its pgx pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is what cmd/api hands the router once every module is built.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health is nil in tests that do not care about readiness.
	Health HealthChecker
	// SessionMiddleware guards the visitor group (chat). The leads module
	// issues the tokens it checks.
	SessionMiddleware gin.HandlerFunc
	// Modules register in order; auth and catalog first, then leads, chat
	// and interactions.
	Modules []Module
}
