package service

import (
	"context"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize = 20
	topCollegeLimit = 5
)

// Reader is the read side of the interaction store.
type Reader interface {
	ListWithLeads(ctx context.Context, params repository.ListParams) ([]repository.InteractionWithLead, int, error)
	Count(ctx context.Context) (int, error)
	TopColleges(ctx context.Context, limit int) ([]repository.CollegeMention, error)
}

// LeadCounter reports how many leads exist.
type LeadCounter interface {
	Count(ctx context.Context) (int, error)
}

// Admin serves the operator dashboard.
type Admin struct {
	reader Reader
	leads  LeadCounter
}

func NewAdmin(reader Reader, leads LeadCounter) *Admin {
	return &Admin{reader: reader, leads: leads}
}

// List returns one page of transcripts, newest first.
func (a *Admin) List(ctx context.Context, req transport.ListInteractionsRequest) (transport.InteractionListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	params := repository.ListParams{
		Search: req.Search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if req.LeadID != "" {
		id, err := uuid.Parse(req.LeadID)
		if err != nil {
			return transport.InteractionListResponse{}, apperr.Validation("invalid lead id")
		}
		params.LeadID = &id
	}

	items, total, err := a.reader.ListWithLeads(ctx, params)
	if err != nil {
		return transport.InteractionListResponse{}, err
	}

	resp := transport.InteractionListResponse{
		Items:      make([]transport.InteractionResponse, 0, len(items)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toInteractionResponse(item))
	}
	return resp, nil
}

// Overview gathers dashboard counters concurrently.
func (a *Admin) Overview(ctx context.Context) (transport.OverviewResponse, error) {
	var (
		resp     transport.OverviewResponse
		mentions []repository.CollegeMention
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := a.leads.Count(gctx)
		resp.TotalLeads = n
		return err
	})
	g.Go(func() error {
		n, err := a.reader.Count(gctx)
		resp.TotalInteractions = n
		return err
	})
	g.Go(func() error {
		var err error
		mentions, err = a.reader.TopColleges(gctx, topCollegeLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.OverviewResponse{}, err
	}

	resp.TopColleges = make([]transport.CollegeMention, 0, len(mentions))
	for _, m := range mentions {
		resp.TopColleges = append(resp.TopColleges, transport.CollegeMention{College: m.College, Mentions: m.Count})
	}
	return resp, nil
}

func toInteractionResponse(item repository.InteractionWithLead) transport.InteractionResponse {
	tags := item.DetectedColleges
	if tags == nil {
		tags = []string{}
	}
	return transport.InteractionResponse{
		ID:               item.ID,
		UserID:           item.UserID,
		Message:          item.Message,
		BotResponse:      item.BotResponse,
		DetectedColleges: tags,
		CreatedAt:        item.CreatedAt,
		Lead: transport.LeadSummary{
			Name:  item.LeadName,
			Phone: item.LeadPhone,
			Email: item.LeadEmail,
		},
	}
}
