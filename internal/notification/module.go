// Package notification sends emails in response to domain events.
// Domain modules publish events and never talk to the mail provider.
package notification

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/email"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
)

// Module is the notification event subscriber.
type Module struct {
	sender   email.Sender
	notifyTo string
	log      *logger.Logger
}

// New creates the notification module. Notifications are skipped while
// LEAD_NOTIFY_EMAIL is empty.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{
		sender:   sender,
		notifyTo: strings.TrimSpace(cfg.GetLeadNotifyEmail()),
		log:      log,
	}
}

// RegisterHandlers subscribes the email handlers on bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	events.On(bus, m.handleLeadRegistered)
	events.On(bus, m.handleLeadsDeduplicated)

	m.log.Info("notification module registered event handlers")
}

func (m *Module) handleLeadRegistered(ctx context.Context, e events.LeadRegistered) error {
	if !e.Created || m.notifyTo == "" {
		return nil
	}

	err := m.sender.SendNewLeadEmail(ctx, m.notifyTo, email.NewLead{
		Name:             e.Name,
		Phone:            e.Phone,
		Email:            e.Email,
		Location:         e.Location,
		Program:          e.Program,
		PreferredCollege: e.PreferredCollege,
		PreferredCourse:  e.PreferredCourse,
		RegisteredAt:     e.OccurredAt(),
	})
	if err != nil {
		m.log.Error("failed to send new lead email",
			slog.String("lead_id", e.LeadID.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	m.log.Info("new lead email sent", slog.String("lead_id", e.LeadID.String()))
	return nil
}

func (m *Module) handleLeadsDeduplicated(ctx context.Context, e events.LeadsDeduplicated) error {
	if m.notifyTo == "" {
		return nil
	}
	// nothing found and nothing failed: scheduled runs stay quiet
	if e.DuplicatesFound == 0 && e.MoveFailures == 0 && e.DeleteFailures == 0 {
		return nil
	}

	err := m.sender.SendDedupeReportEmail(ctx, m.notifyTo, email.DedupeReport{
		RequestedBy:       e.RequestedBy,
		DryRun:            e.DryRun,
		TotalLeads:        e.TotalLeads,
		DuplicateGroups:   e.DuplicateGroups,
		DuplicatesFound:   e.DuplicatesFound,
		LeadsMerged:       e.LeadsMerged,
		InteractionsMoved: e.InteractionsMoved,
		MoveFailures:      e.MoveFailures,
		DeleteFailures:    e.DeleteFailures,
		Duration:          e.Duration,
	})
	if err != nil {
		m.log.Error("failed to send dedupe report", slog.String("error", err.Error()))
		return err
	}
	return nil
}
