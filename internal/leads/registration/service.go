// Package registration resolves a registration form to exactly one lead,
// keyed by phone number.
package registration

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/metrics"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/phone"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/sanitize"

	"github.com/google/uuid"
)

// Store is the persistence the resolver needs.
type Store interface {
	FindByPhone(ctx context.Context, phone string) (domain.Lead, error)
	Insert(ctx context.Context, lead domain.Lead) error
	UpdateProfile(ctx context.Context, lead domain.Lead) error
}

// Result describes how a submission was resolved.
type Result struct {
	Lead domain.Lead
	Ref  domain.Ref
	// Created is true when a new lead was inserted.
	Created bool
	// Persisted is false when the store failed and Ref is synthetic.
	Persisted bool
}

type Service struct {
	store Store
	bus   events.Bus
	log   *logger.Logger
	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides lead id generation.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) { s.newID = gen }
}

func New(store Store, bus events.Bus, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store: store,
		bus:   bus,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register upserts the lead identified by the submission's phone number.
// It never fails: when the store is unreachable the visitor still gets a
// synthetic offline ref so the chat can continue.
func (s *Service) Register(ctx context.Context, sub domain.Submission) Result {
	sub = clean(sub)
	now := s.now()
	log := s.log.WithContext(ctx)

	lead, created, err := s.upsert(ctx, sub, now)
	if err != nil {
		log.StoreFallback("leads.register", err, slog.String("phone", sub.Phone))
		metrics.RecordRegistration(metrics.RegistrationOffline)
		return Result{
			Lead:      domain.Lead{Name: sub.Name, Phone: sub.Phone, Email: sub.Email, Profile: sub.Profile, CreatedAt: now, UpdatedAt: now},
			Ref:       domain.NewOfflineRef(now),
			Created:   false,
			Persisted: false,
		}
	}

	log.Info("lead registered",
		slog.String("lead_id", lead.ID.String()),
		slog.Bool("created", created),
	)
	if created {
		metrics.RecordRegistration(metrics.RegistrationCreated)
	} else {
		metrics.RecordRegistration(metrics.RegistrationUpdated)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadRegistered{
			BaseEvent:        events.NewBaseEvent(),
			LeadID:           lead.ID,
			Name:             lead.Name,
			Phone:            lead.Phone,
			Email:            lead.Email,
			Location:         lead.Profile.Location,
			Program:          lead.Profile.Program,
			PreferredCollege: lead.Profile.PreferredCollege,
			PreferredCourse:  lead.Profile.PreferredCourse,
			Created:          created,
		})
	}

	return Result{
		Lead:      lead,
		Ref:       domain.NewPersistedRef(lead.ID),
		Created:   created,
		Persisted: true,
	}
}

func (s *Service) upsert(ctx context.Context, sub domain.Submission, now time.Time) (domain.Lead, bool, error) {
	existing, err := s.store.FindByPhone(ctx, sub.Phone)
	switch {
	case err == nil:
		existing.Apply(sub, now)
		if err := s.store.UpdateProfile(ctx, existing); err != nil {
			return domain.Lead{}, false, err
		}
		return existing, false, nil
	case errors.Is(err, repository.ErrNotFound):
		lead := domain.NewLead(s.newID(), sub, now)
		if err := s.store.Insert(ctx, lead); err != nil {
			return domain.Lead{}, false, err
		}
		return lead, true, nil
	default:
		return domain.Lead{}, false, err
	}
}

func clean(sub domain.Submission) domain.Submission {
	return domain.Submission{
		Name:  sanitize.Line(sub.Name),
		Phone: phone.Normalize(sub.Phone),
		Email: sanitize.Line(sub.Email),
		Profile: domain.Profile{
			Location:         sanitize.Line(sub.Profile.Location),
			Program:          sanitize.Line(sub.Profile.Program),
			PreferredCollege: sanitize.Line(sub.Profile.PreferredCollege),
			PreferredCourse:  sanitize.Line(sub.Profile.PreferredCourse),
		},
	}
}
