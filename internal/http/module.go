// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router groups.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared route groups and middleware for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the public /api/v1 route group.
	V1 *gin.RouterGroup
	// Visitor is the /api/v1 group that requires a visitor session token.
	Visitor *gin.RouterGroup
	// Admin is the /api/v1/admin group that requires an admin access token.
	Admin *gin.RouterGroup
	// PublicRateLimiter throttles unauthenticated write endpoints.
	PublicRateLimiter *httpkit.IPRateLimiter
	// AuthRateLimiter is the stricter rate limiter for sign-in routes.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
