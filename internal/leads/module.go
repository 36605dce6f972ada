// Package leads provides the lead capture bounded context module: visitor
// registration, the admin lead listing and duplicate cleanup.
package leads

import (
	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	apphttp "github.com/ReachRyt-Services/collegeSeraBot/internal/http"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/handler"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/maintenance"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/management"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/registration"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/session"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	repo         *repository.Repository
	registration *registration.Service
	cleanup      *maintenance.CleanupService
	handler      *handler.Handler
}

// Deps groups what the leads module needs from the composition root.
type Deps struct {
	DB       repository.DB
	EventBus events.Bus
	// Mover re-points interactions during duplicate cleanup.
	Mover ports.InteractionMover
	// Scheduler queues background cleanup. Optional.
	Scheduler ports.CleanupScheduler
	Sessions  *session.Codec
	Greeter   handler.Greeter
	Validator *validator.Validator
	Logger    *logger.Logger
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(deps Deps) *Module {
	repo := repository.New(deps.DB)
	reg := registration.New(repo, deps.EventBus, deps.Logger)
	reconciler := maintenance.NewDuplicateReconciler(repo, deps.Mover, deps.Logger)
	cleanup := maintenance.NewCleanupService(reconciler, deps.EventBus, deps.Logger)
	mgmt := management.New(repo, cleanup, deps.Scheduler)

	return &Module{
		repo:         repo,
		registration: reg,
		cleanup:      cleanup,
		handler:      handler.New(reg, mgmt, deps.Sessions, deps.Greeter, deps.Validator),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Repository returns the lead store for modules that count or join leads.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// Cleanup returns the duplicate cleanup service used by workers and tools.
func (m *Module) Cleanup() *maintenance.CleanupService {
	return m.cleanup
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/leads/register", ctx.PublicRateLimiter.RateLimit(), m.handler.Register)

	ctx.Admin.GET("/leads", m.handler.List)
	ctx.Admin.GET("/leads/:id", m.handler.Get)
	ctx.Admin.POST("/leads/deduplicate", m.handler.Deduplicate)
}

var _ apphttp.Module = (*Module)(nil)
