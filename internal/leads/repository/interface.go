package repository

import (
	"context"

	"github.com/google/uuid"
)

// LeadReader provides read-only access to leads and their action history.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context) ([]Lead, error)
}

// LeadWriter provides the two writes the system supports: a form
// submission and appending an action. Leads and actions are never edited.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	AppendAction(ctx context.Context, leadID uuid.UUID, params AppendActionParams) (Lead, Action, error)
}

// LeadsRepository is the full store used by the leads service.
type LeadsRepository interface {
	LeadReader
	LeadWriter
}

var _ LeadsRepository = (*Repository)(nil)
