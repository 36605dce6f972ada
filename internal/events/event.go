// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"context"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// On subscribes a typed handler; see platform/events.On.
func On[E Event](bus Bus, handle func(ctx context.Context, event E) error) {
	events.On(bus, handle)
}

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadRegistered is published after a registration was stored.
// Created is false when an existing lead's profile was overwritten.
type LeadRegistered struct {
	BaseEvent
	LeadID           uuid.UUID `json:"lead_id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Location         string    `json:"location,omitempty"`
	Program          string    `json:"program,omitempty"`
	PreferredCollege string    `json:"preferred_college,omitempty"`
	PreferredCourse  string    `json:"preferred_course,omitempty"`
	Created          bool      `json:"created"`
}

func (e LeadRegistered) EventName() string { return "leads.lead.registered" }

// LeadsDeduplicated is published when a reconciliation run finished.
type LeadsDeduplicated struct {
	BaseEvent
	RequestedBy       string        `json:"requested_by"`
	DryRun            bool          `json:"dry_run"`
	TotalLeads        int           `json:"total_leads"`
	DuplicateGroups   int           `json:"duplicate_groups"`
	DuplicatesFound   int           `json:"duplicates_found"`
	LeadsMerged       int           `json:"leads_merged"`
	InteractionsMoved int64         `json:"interactions_moved"`
	MoveFailures      int           `json:"move_failures"`
	DeleteFailures    int           `json:"delete_failures"`
	Duration          time.Duration `json:"duration"`
}

func (e LeadsDeduplicated) EventName() string { return "leads.duplicates.reconciled" }
