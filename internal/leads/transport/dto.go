package transport

import "time"

// RegisterLeadRequest is the registration form submitted before chatting.
type RegisterLeadRequest struct {
	Name             string `json:"name" validate:"required,max=120"`
	Phone            string `json:"phone" validate:"required,inmobile"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Location         string `json:"location" validate:"max=120"`
	Program          string `json:"program" validate:"max=120"`
	PreferredCollege string `json:"preferred_college" validate:"max=200"`
	PreferredCourse  string `json:"preferred_course" validate:"max=200"`
}

type LeadResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Location         string    `json:"location"`
	Program          string    `json:"program"`
	PreferredCollege string    `json:"preferred_college"`
	PreferredCourse  string    `json:"preferred_course"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RegisterLeadResponse carries the visitor's session. Persisted is false
// when the lead store was unavailable and the id is a synthetic ref.
type RegisterLeadResponse struct {
	Lead           LeadResponse `json:"lead"`
	SessionToken   string       `json:"session_token"`
	Persisted      bool         `json:"persisted"`
	Created        bool         `json:"created"`
	WelcomeMessage string       `json:"welcome_message"`
}

type ListLeadsRequest struct {
	Search   string `form:"search" validate:"max=200"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

type DeduplicateRequest struct {
	DryRun bool `form:"dryRun"`
	Async  bool `form:"async"`
}

// DeduplicateResponse is either a finished run's stats or a queued task.
type DeduplicateResponse struct {
	Queued bool         `json:"queued"`
	TaskID string       `json:"task_id,omitempty"`
	Stats  *DedupeStats `json:"stats,omitempty"`
}

type DedupeStats struct {
	TotalLeads        int   `json:"total_leads"`
	DuplicateGroups   int   `json:"duplicate_groups"`
	DuplicatesFound   int   `json:"duplicates_found"`
	LeadsMerged       int   `json:"leads_merged"`
	InteractionsMoved int64 `json:"interactions_moved"`
	MoveFailures      int   `json:"move_failures"`
	DeleteFailures    int   `json:"delete_failures"`
	DryRun            bool  `json:"dry_run"`
	DurationMs        int64 `json:"duration_ms"`
}

// LeadIDParam binds the :id path segment.
type LeadIDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}
