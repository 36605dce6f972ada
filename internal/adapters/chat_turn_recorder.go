package adapters

import (
	"context"

	chatports "github.com/ReachRyt-Services/collegeSeraBot/internal/chat/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/interactions/service"
)

// InteractionLog is the interactions module's turn logger.
type InteractionLog interface {
	Log(ctx context.Context, entry service.Entry) []string
}

// ChatTurnRecorder adapts the interaction logger to the chat module's
// ports.TurnRecorder.
type ChatTurnRecorder struct {
	log InteractionLog
}

func NewChatTurnRecorder(log InteractionLog) *ChatTurnRecorder {
	return &ChatTurnRecorder{log: log}
}

func (a *ChatTurnRecorder) RecordTurn(ctx context.Context, visitor chatports.Visitor, message, reply string) []string {
	return a.log.Log(ctx, service.Entry{Ref: visitor.Ref, Phone: visitor.Phone, Message: message, BotResponse: reply})
}

var _ chatports.TurnRecorder = (*ChatTurnRecorder)(nil)
