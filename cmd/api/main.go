package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/adapters"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/auth"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/catalog"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat"
	chatservice "github.com/ReachRyt-Services/collegeSeraBot/internal/chat/service"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/email"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	apphttp "github.com/ReachRyt-Services/collegeSeraBot/internal/http"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/http/router"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions"
	interactionsrepo "github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/notification"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/scheduler"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/session"
	"github.com/ReachRyt-Services/collegeSeraBot/migrations"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/ai/gemini"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/db"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	cleanupScheduler, closeScheduler := initCleanupScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	searchModel, err := gemini.NewModel(ctx, gemini.Config{APIKey: cfg.GetGeminiAPIKey(), Model: cfg.GetGeminiSearchModel()})
	if err != nil {
		log.Error("failed to initialize search model", "error", err)
		panic("failed to initialize search model: " + err.Error())
	}
	thinkingModel, err := gemini.NewModel(ctx, gemini.Config{APIKey: cfg.GetGeminiAPIKey(), Model: cfg.GetGeminiThinkingModel()})
	if err != nil {
		log.Error("failed to initialize thinking model", "error", err)
		panic("failed to initialize thinking model: " + err.Error())
	}
	log.Info("language models initialized", "search", searchModel.Name(), "thinking", thinkingModel.Name())

	// Shared validator instance for dependency injection
	val := validator.New()
	sessions := session.NewCodec(cfg)
	colleges := catalog.Default()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	// The leads module only sees interactions through the mover port.
	mover := adapters.NewInteractionMover(interactionsrepo.New(pool))
	leadsModule := leads.NewModule(leads.Deps{
		DB:        pool,
		EventBus:  eventBus,
		Mover:     mover,
		Scheduler: cleanupScheduler,
		Sessions:  sessions,
		Greeter:   colleges,
		Validator: val,
		Logger:    log,
	})

	interactionsModule := interactions.NewModule(pool, colleges, leadsModule.Repository(), val, log)
	recorder := adapters.NewChatTurnRecorder(interactionsModule.Logger())

	chatSvc := chatservice.New(searchModel, thinkingModel, colleges, cfg.GetGeminiThinkingBudget(), log)
	chatModule := chat.NewModule(chatSvc, recorder, val)

	authModule := auth.NewModule(cfg, val, log)
	catalogModule := catalog.NewModule(colleges)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:            cfg,
		Logger:            log,
		Health:            pool,
		SessionMiddleware: session.Required(sessions),
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			leadsModule,
			chatModule,
			interactionsModule,
		},
	}

	// WriteTimeout leaves room for thinking-mode answers.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initCleanupScheduler returns a nil scheduler when Redis is not configured,
// which turns async duplicate cleanup requests into 503s.
func initCleanupScheduler(cfg *config.Config, log *logger.Logger) (ports.CleanupScheduler, func()) {
	if !cfg.IsSchedulerEnabled() {
		log.Warn("REDIS_URL not configured; background duplicate cleanup disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize cleanup scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
