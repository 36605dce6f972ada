package events

import (
	platformevents "github.com/ReachRyt-Services/collegeSeraBot/platform/events"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
)

// InMemoryBus is a type alias to the platform InMemoryBus
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
