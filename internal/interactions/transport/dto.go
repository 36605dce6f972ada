package transport

import (
	"time"

	"github.com/google/uuid"
)

type ListInteractionsRequest struct {
	Search   string `form:"search" validate:"max=200"`
	LeadID   string `form:"leadId" validate:"omitempty,uuid"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type InteractionResponse struct {
	ID               uuid.UUID   `json:"id"`
	UserID           uuid.UUID   `json:"user_id"`
	Message          string      `json:"message"`
	BotResponse      string      `json:"bot_response"`
	DetectedColleges []string    `json:"detected_colleges"`
	CreatedAt        time.Time   `json:"created_at"`
	Lead             LeadSummary `json:"leads"`
}

// LeadSummary is the lead contact info shown next to a transcript.
type LeadSummary struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type InteractionListResponse struct {
	Items      []InteractionResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

type CollegeMention struct {
	College  string `json:"college"`
	Mentions int    `json:"mentions"`
}

type OverviewResponse struct {
	TotalLeads        int              `json:"total_leads"`
	TotalInteractions int              `json:"total_interactions"`
	TopColleges       []CollegeMention `json:"top_colleges"`
}
