// Package events re-exports the platform event bus so domain modules only
// import internal/events.
package events

import (
	platformevents "followup_backend/platform/events"
	"followup_backend/platform/logger"
)

// InMemoryBus is the process-local bus used by the api and scheduler binaries.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
