// Package service records chat turns and answers admin transcript queries.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/metrics"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/phone"

	"github.com/google/uuid"
)

// Appender stores a single interaction.
type Appender interface {
	Create(ctx context.Context, params repository.CreateParams) error
}

// Tagger computes the college tags for a message.
type Tagger interface {
	Tags(message string, seed []string) []string
}

// LeadLocator finds the current lead for a phone number.
type LeadLocator interface {
	FindByPhone(ctx context.Context, phone string) (domain.Lead, error)
}

// Entry is one chat turn to record.
type Entry struct {
	Ref domain.Ref
	// Phone is the visitor's phone from their session. It finds the
	// surviving lead when Ref was merged away.
	Phone       string
	Message     string
	BotResponse string
	// Tags are caller-supplied tags merged with the detected ones.
	Tags []string
}

// Logger records chat turns against persisted leads.
type Logger struct {
	store  Appender
	tagger Tagger
	leads  LeadLocator
	log    *logger.Logger
}

// NewLogger builds the turn logger. leads may be nil, in which case turns
// for merged leads are dropped like any other store failure.
func NewLogger(store Appender, tagger Tagger, leads LeadLocator, log *logger.Logger) *Logger {
	return &Logger{store: store, tagger: tagger, leads: leads, log: log}
}

// Log records the turn and returns the tag set that was (or would have been)
// stored. Synthetic refs are never written, and store failures are logged and
// swallowed so the visitor's chat keeps working. A turn whose lead was merged
// away is retried once on the lead that now owns the visitor's phone.
func (l *Logger) Log(ctx context.Context, entry Entry) []string {
	tags := l.tagger.Tags(entry.Message, entry.Tags)
	log := l.log.WithContext(ctx)

	leadID, ok := entry.Ref.LeadID()
	if !ok {
		log.Debug("skipping interaction for non-persisted lead", slog.String("lead_ref", entry.Ref.String()))
		metrics.RecordInteraction(metrics.InteractionSkipped)
		return tags
	}

	params := repository.CreateParams{
		UserID:           leadID,
		Message:          entry.Message,
		BotResponse:      entry.BotResponse,
		DetectedColleges: tags,
	}
	err := l.store.Create(ctx, params)
	if errors.Is(err, repository.ErrLeadNotFound) {
		if master, ok := l.survivor(ctx, entry.Phone, leadID); ok {
			log.Info("lead was merged, recording interaction on surviving lead",
				slog.String("lead_id", leadID.String()),
				slog.String("master_id", master.String()),
			)
			params.UserID = master
			err = l.store.Create(ctx, params)
		}
	}
	if err != nil {
		log.StoreFallback("interactions.log", err, slog.String("lead_id", leadID.String()))
		metrics.RecordInteraction(metrics.InteractionFailed)
		return tags
	}
	metrics.RecordInteraction(metrics.InteractionStored)

	return tags
}

// survivor returns the lead that now owns phone, if it differs from gone.
func (l *Logger) survivor(ctx context.Context, raw string, gone uuid.UUID) (uuid.UUID, bool) {
	key := phone.Normalize(raw)
	if l.leads == nil || key == "" {
		return uuid.Nil, false
	}
	lead, err := l.leads.FindByPhone(ctx, key)
	if err != nil || lead.ID == gone {
		return uuid.Nil, false
	}
	return lead.ID, true
}
