// Package ports declares what the chat module needs from other modules.
package ports

import (
	"context"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
)

// Visitor identifies who a turn belongs to. Phone lets the recorder follow
// a lead that was merged after the session was issued.
type Visitor struct {
	Ref   domain.Ref
	Phone string
}

// TurnRecorder stores a completed chat turn and returns the college tags
// attached to it. It never fails the chat.
type TurnRecorder interface {
	RecordTurn(ctx context.Context, visitor Visitor, message, reply string) []string
}
