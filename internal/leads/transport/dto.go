package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// SubmitLeadRequest is the public enquiry form.
type SubmitLeadRequest struct {
	Name        string `json:"name" validate:"notblank,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"notblank,min=5,max=30"`
	Website     string `json:"website" validate:"max=500"`
	Budget      string `json:"budget" validate:"max=100"`
	Service     string `json:"service" validate:"max=200"`
	StartTime   string `json:"startTime" validate:"max=100"`
	Designation string `json:"designation" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// AppendActionRequest records one contact attempt. NextFollowUp accepts
// "Today", a whole number of days, a calendar date, "close" or "onboard".
type AppendActionRequest struct {
	ConnectionStatus string `json:"connectionStatus" validate:"max=100"`
	ConnectedVia     string `json:"connectedVia" validate:"max=100"`
	ClientStage      string `json:"clientStage" validate:"max=100"`
	Remarks          string `json:"remarks" validate:"max=5000"`
	NextFollowUp     string `json:"nextFollowUp" validate:"max=100"`
	ActionBy         string `json:"actionBy" validate:"max=200"`
}

// Response DTOs

type ActionResponse struct {
	ID               uuid.UUID `json:"id"`
	ConnectionStatus string    `json:"connectionStatus"`
	ConnectedVia     string    `json:"connectedVia"`
	ClientStage      string    `json:"clientStage"`
	Remarks          string    `json:"remarks"`
	NextFollowUp     string    `json:"nextFollowUp"`
	ActionBy         string    `json:"actionBy"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ClassificationResponse is a lead's position in the pipeline as of today.
type ClassificationResponse struct {
	Stage          string  `json:"stage"`
	DueStatus      string  `json:"dueStatus"`
	CommitmentKind string  `json:"commitmentKind"`
	CommitmentDate *string `json:"commitmentDate,omitempty"`
}

type LeadResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Website     string           `json:"website"`
	Budget      string           `json:"budget"`
	Service     string           `json:"service"`
	StartTime   string           `json:"startTime"`
	Designation string           `json:"designation"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
	Actions     []ActionResponse `json:"actions"`
	// LatestActionID is the action the classification was derived from.
	// Actions stay in logging order, which need not match createdAt order.
	LatestActionID *uuid.UUID             `json:"latestActionId,omitempty"`
	Classification ClassificationResponse `json:"classification"`
}

type LeadListResponse struct {
	View  string         `json:"view"`
	Today string         `json:"today"`
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

// LatestActionItem is a lead reduced to its most recent action.
type LatestActionItem struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	Service        string                 `json:"service"`
	CreatedAt      time.Time              `json:"createdAt"`
	LatestAction   *ActionResponse        `json:"latestAction"`
	Classification ClassificationResponse `json:"classification"`
}

type LatestActionsResponse struct {
	Today string             `json:"today"`
	Items []LatestActionItem `json:"items"`
	Total int                `json:"total"`
}

// DigestResponse summarizes the follow-up pipeline for one day.
type DigestResponse struct {
	Date        string         `json:"date"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Counts      map[string]int `json:"counts"`
	DueToday    []uuid.UUID    `json:"dueToday"`
	Overdue     []uuid.UUID    `json:"overdue"`
	Cached      bool           `json:"cached"`
}
