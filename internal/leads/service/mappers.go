package service

import (
	"time"

	"followup_backend/internal/leads/digest"
	"followup_backend/internal/leads/domain"
	"followup_backend/internal/leads/repository"
	"followup_backend/internal/leads/transport"

	"github.com/google/uuid"
)

// classifyLead classifies lead as of now and reports the index of the
// selected action in lead.Actions, -1 when there is none.
func classifyLead(lead repository.Lead, now time.Time) (domain.Classification, int) {
	actions := toDomainActions(lead.Actions)
	latest := domain.LatestIndex(actions)
	if latest < 0 {
		return domain.ClassifyLatest(nil, now), latest
	}
	return domain.ClassifyLatest(&actions[latest], now), latest
}

func toDomainActions(actions []repository.Action) []domain.Action {
	out := make([]domain.Action, len(actions))
	for i, a := range actions {
		out[i] = domain.Action{
			ConnectionStatus: a.ConnectionStatus,
			ConnectedVia:     a.ConnectedVia,
			ClientStage:      a.ClientStage,
			Remarks:          a.Remarks,
			NextFollowUp:     a.NextFollowUp,
			ActionBy:         a.ActionBy,
			CreatedAt:        a.CreatedAt,
		}
	}
	return out
}

func toLeadResponse(lead repository.Lead, now time.Time) transport.LeadResponse {
	classification, latest := classifyLead(lead, now)
	return toLeadResponseClassified(lead, classification, latest)
}

// toLeadResponseClassified maps lead with a classification already computed
// from lead.Actions[latest].
func toLeadResponseClassified(lead repository.Lead, classification domain.Classification, latest int) transport.LeadResponse {
	actions := make([]transport.ActionResponse, len(lead.Actions))
	for i, action := range lead.Actions {
		actions[i] = toActionResponse(action)
	}

	var latestID *uuid.UUID
	if latest >= 0 {
		id := lead.Actions[latest].ID
		latestID = &id
	}

	return transport.LeadResponse{
		ID:             lead.ID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		Website:        lead.Website,
		Budget:         lead.Budget,
		Service:        lead.Service,
		StartTime:      lead.StartTime,
		Designation:    lead.Designation,
		Description:    lead.Description,
		CreatedAt:      lead.CreatedAt,
		Actions:        actions,
		LatestActionID: latestID,
		Classification: toClassificationResponse(classification),
	}
}

func toActionResponse(action repository.Action) transport.ActionResponse {
	return transport.ActionResponse{
		ID:               action.ID,
		ConnectionStatus: action.ConnectionStatus,
		ConnectedVia:     action.ConnectedVia,
		ClientStage:      action.ClientStage,
		Remarks:          action.Remarks,
		NextFollowUp:     action.NextFollowUp,
		ActionBy:         action.ActionBy,
		CreatedAt:        action.CreatedAt,
	}
}

func toClassificationResponse(c domain.Classification) transport.ClassificationResponse {
	resp := transport.ClassificationResponse{
		Stage:          string(c.Stage),
		DueStatus:      string(c.DueStatus),
		CommitmentKind: c.Commitment.Kind.String(),
	}
	if c.Commitment.Specified() {
		date := c.Commitment.Date.String()
		resp.CommitmentDate = &date
	}
	return resp
}

func toDigestResponse(d digest.Digest, cached bool) transport.DigestResponse {
	return transport.DigestResponse{
		Date:        d.Date,
		GeneratedAt: d.GeneratedAt,
		Counts:      d.Counts,
		DueToday:    d.DueToday,
		Overdue:     d.Overdue,
		Cached:      cached,
	}
}
