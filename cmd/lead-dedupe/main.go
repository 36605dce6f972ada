// Command lead-dedupe merges leads that share a phone number and prints the
// run statistics as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/adapters"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/email"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	interactionsrepo "github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/maintenance"
	leadrepo "github.com/ReachRyt-Services/collegeSeraBot/internal/leads/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/notification"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/db"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/spf13/cobra"
)

type options struct {
	dryRun      bool
	requestedBy string
	notify      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "lead-dedupe",
		Short: "Merge leads that share a phone number",
		Long: `lead-dedupe keeps the newest lead for every phone number, moves the
interactions of the older leads onto it and deletes the older leads.

Examples:
  # Preview what would be merged
  lead-dedupe --dry-run

  # Merge and email the report to LEAD_NOTIFY_EMAIL
  lead-dedupe --notify --requested-by ops@collegesera.in`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report duplicates without merging")
	cmd.Flags().StringVar(&opts.requestedBy, "requested-by", "cli", "name recorded in logs and the report email")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "email the run report to LEAD_NOTIFY_EMAIL")
	return cmd
}

func run(parent context.Context, opts options) error {
	cfg, err := config.LoadWorker()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logs go to stderr so stdout stays machine readable.
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	var bus events.Bus
	if opts.notify {
		sender, err := email.NewSender(cfg)
		if err != nil {
			return fmt.Errorf("init email sender: %w", err)
		}
		inMemory := events.NewInMemoryBus(log)
		notification.New(sender, cfg, log).RegisterHandlers(inMemory)
		defer inMemory.Wait()
		bus = inMemory
	}

	mover := adapters.NewInteractionMover(interactionsrepo.New(pool))
	reconciler := maintenance.NewDuplicateReconciler(leadrepo.New(pool), mover, log)
	stats, err := maintenance.NewCleanupService(reconciler, bus, log).CleanDuplicates(ctx, opts.requestedBy, opts.dryRun)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
