package email

import (
	"context"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/config"
)

// NewLead is the content of a new-lead notification.
type NewLead struct {
	Name             string
	Phone            string
	Email            string
	Location         string
	Program          string
	PreferredCollege string
	PreferredCourse  string
	RegisteredAt     time.Time
}

// DedupeReport summarises one duplicate cleanup run.
type DedupeReport struct {
	RequestedBy       string
	DryRun            bool
	TotalLeads        int
	DuplicateGroups   int
	DuplicatesFound   int
	LeadsMerged       int
	InteractionsMoved int64
	MoveFailures      int
	DeleteFailures    int
	Duration          time.Duration
}

type Sender interface {
	SendNewLeadEmail(ctx context.Context, toEmail string, lead NewLead) error
	SendDedupeReportEmail(ctx context.Context, toEmail string, report DedupeReport) error
}

type NoopSender struct{}

func (NoopSender) SendNewLeadEmail(ctx context.Context, toEmail string, lead NewLead) error {
	return nil
}

func (NoopSender) SendDedupeReportEmail(ctx context.Context, toEmail string, report DedupeReport) error {
	return nil
}

// NewSender returns an SMTP sender, or a NoopSender when SMTP is not configured.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
