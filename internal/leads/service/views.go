package service

import (
	"context"

	"followup_backend/internal/leads/domain"
	"followup_backend/internal/leads/transport"
)

// ListView returns the leads that fall in view, newest first, classified
// against one shared instant.
func (s *Service) ListView(ctx context.Context, view domain.View) (transport.LeadListResponse, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	now := s.evaluationTime()
	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		classification, latest := classifyLead(lead, now)
		if !view.Matches(classification) {
			continue
		}
		items = append(items, toLeadResponseClassified(lead, classification, latest))
	}

	return transport.LeadListResponse{
		View:  string(view),
		Today: domain.DateOf(now).String(),
		Items: items,
		Total: len(items),
	}, nil
}

// ListLatestActions returns every lead reduced to its most recent action.
func (s *Service) ListLatestActions(ctx context.Context) (transport.LatestActionsResponse, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return transport.LatestActionsResponse{}, err
	}

	now := s.evaluationTime()
	items := make([]transport.LatestActionItem, 0, len(leads))
	for _, lead := range leads {
		classification, latest := classifyLead(lead, now)
		item := transport.LatestActionItem{
			ID:             lead.ID,
			Name:           lead.Name,
			Email:          lead.Email,
			Phone:          lead.Phone,
			Service:        lead.Service,
			CreatedAt:      lead.CreatedAt,
			Classification: toClassificationResponse(classification),
		}
		if latest >= 0 {
			action := toActionResponse(lead.Actions[latest])
			item.LatestAction = &action
		}
		items = append(items, item)
	}

	return transport.LatestActionsResponse{
		Today: domain.DateOf(now).String(),
		Items: items,
		Total: len(items),
	}, nil
}
