// Package management serves the operator-facing lead endpoints.
package management

import (
	"context"
	"errors"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/maintenance"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/apperr"

	"github.com/google/uuid"
)

const defaultPageSize = 20

// Reader is the read side of the lead store.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, params repository.ListParams) ([]domain.Lead, int, error)
}

// Cleaner runs a duplicate cleanup in the request goroutine.
type Cleaner interface {
	CleanDuplicates(ctx context.Context, requestedBy string, dryRun bool) (maintenance.Stats, error)
}

type Service struct {
	reader    Reader
	cleaner   Cleaner
	scheduler ports.CleanupScheduler
}

// New builds the management service. scheduler may be nil when no task
// queue is configured; async cleanup requests then fail as unavailable.
func New(reader Reader, cleaner Cleaner, scheduler ports.CleanupScheduler) *Service {
	return &Service{reader: reader, cleaner: cleaner, scheduler: scheduler}
}

func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	leads, total, err := s.reader.List(ctx, repository.ListParams{
		Search: req.Search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	resp := transport.LeadListResponse{
		Items:      make([]transport.LeadResponse, 0, len(leads)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	for _, lead := range leads {
		resp.Items = append(resp.Items, ToLeadResponse(lead))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.reader.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.LeadResponse{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(lead), nil
}

// Deduplicate merges duplicate leads now, or queues the merge when Async is set.
func (s *Service) Deduplicate(ctx context.Context, requestedBy string, req transport.DeduplicateRequest) (transport.DeduplicateResponse, error) {
	if req.Async {
		if s.scheduler == nil {
			return transport.DeduplicateResponse{}, apperr.Unavailable("background cleanup is not configured")
		}
		taskID, err := s.scheduler.EnqueueDuplicateCleanup(ctx, ports.CleanupRequest{
			RequestedBy: requestedBy,
			DryRun:      req.DryRun,
		})
		if err != nil {
			return transport.DeduplicateResponse{}, err
		}
		return transport.DeduplicateResponse{Queued: true, TaskID: taskID}, nil
	}

	stats, err := s.cleaner.CleanDuplicates(ctx, requestedBy, req.DryRun)
	if err != nil {
		return transport.DeduplicateResponse{}, apperr.Internal("duplicate cleanup failed", err)
	}
	return transport.DeduplicateResponse{Stats: toDedupeStats(stats)}, nil
}

// ToLeadResponse maps a lead to its API shape.
func ToLeadResponse(lead domain.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:               lead.ID.String(),
		Name:             lead.Name,
		Phone:            lead.Phone,
		Email:            lead.Email,
		Location:         lead.Profile.Location,
		Program:          lead.Profile.Program,
		PreferredCollege: lead.Profile.PreferredCollege,
		PreferredCourse:  lead.Profile.PreferredCourse,
		CreatedAt:        lead.CreatedAt,
		UpdatedAt:        lead.UpdatedAt,
	}
}

func toDedupeStats(stats maintenance.Stats) *transport.DedupeStats {
	return &transport.DedupeStats{
		TotalLeads:        stats.TotalLeads,
		DuplicateGroups:   stats.DuplicateGroups,
		DuplicatesFound:   stats.DuplicatesFound,
		LeadsMerged:       stats.LeadsMerged,
		InteractionsMoved: stats.InteractionsMoved,
		MoveFailures:      stats.MoveFailures,
		DeleteFailures:    stats.DeleteFailures,
		DryRun:            stats.DryRun,
		DurationMs:        stats.Duration.Milliseconds(),
	}
}
