// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"taleschool_backend/platform/events"

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

// =============================================================================
// Schools Domain Events
// =============================================================================

// SchoolUpdated is published whenever a school row changes (rename, contact
// details, activation toggle). Slug is the slug the school was reachable
// under before the change, so cached tenant lookups can be invalidated.
type SchoolUpdated struct {
	BaseEvent
	SchoolID uuid.UUID `json:"schoolId"`
	Slug     string    `json:"slug"`
	Active   bool      `json:"active"`
}

func (e SchoolUpdated) EventName() string { return "schools.school.updated" }

// SchoolDeleted is published when a school row is removed.
type SchoolDeleted struct {
	BaseEvent
	SchoolID uuid.UUID `json:"schoolId"`
	Slug     string    `json:"slug"`
}

func (e SchoolDeleted) EventName() string { return "schools.school.deleted" }
