// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"followup_backend/platform/events"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var (
	NewBaseEvent   = events.NewBaseEvent
	NewBaseEventAt = events.NewBaseEventAt
)

// =============================================================================
// Auth Domain Events
// =============================================================================

// StaffSignedUp is published when a staff account is created.
type StaffSignedUp struct {
	BaseEvent
	StaffID uuid.UUID `json:"staffId"`
	Email   string    `json:"email"`
}

func (e StaffSignedUp) EventName() string { return "auth.staff.signed_up" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadSubmitted is published when the public form stores a new lead.
type LeadSubmitted struct {
	BaseEvent
	LeadID  uuid.UUID `json:"leadId"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Service string    `json:"service"`
}

func (e LeadSubmitted) EventName() string { return "leads.lead.submitted" }

// LeadActionLogged is published after an action is appended to a lead.
type LeadActionLogged struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	ActionID     uuid.UUID `json:"actionId"`
	ActionBy     string    `json:"actionBy"`
	NextFollowUp string    `json:"nextFollowUp"`
	Stage        string    `json:"stage"`
	DueStatus    string    `json:"dueStatus"`
}

func (e LeadActionLogged) EventName() string { return "leads.action.logged" }

// LeadStageChanged is published when an appended action moves a lead to a
// different stage, including reopening a closed or onboarded lead.
type LeadStageChanged struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	ActionBy string    `json:"actionBy"`
}

func (e LeadStageChanged) EventName() string { return "leads.lead.stage_changed" }
