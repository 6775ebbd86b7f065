// Package service holds the leads use cases: intake, action logging and the
// classified read views. Classification itself lives in the domain package;
// this layer supplies the clock, persistence and events.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"followup_backend/internal/events"
	"followup_backend/internal/leads/digest"
	"followup_backend/internal/leads/domain"
	"followup_backend/internal/leads/repository"
	"followup_backend/internal/leads/transport"
	"followup_backend/platform/apperr"
	"followup_backend/platform/config"
	"followup_backend/platform/logger"
	"followup_backend/platform/phone"
	"followup_backend/platform/sanitize"

	"github.com/google/uuid"
)

const msgLeadNotFound = "lead not found"

// DigestCache is the subset of the digest store the service needs.
type DigestCache interface {
	Get(ctx context.Context, date string) (digest.Digest, bool, error)
	Generation(ctx context.Context, date string) (int64, error)
	SaveIfCurrent(ctx context.Context, d digest.Digest, gen int64) (bool, error)
	Invalidate(ctx context.Context, date string) error
}

// Actor is the signed-in staff member logging an action.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Service provides business logic for leads.
type Service struct {
	repo        repository.LeadsRepository
	eventBus    events.Bus
	log         *logger.Logger
	loc         *time.Location
	phoneRegion string
	now         func() time.Time
	digests     DigestCache
}

// New creates a leads service. "Today" is evaluated in cfg's location.
func New(repo repository.LeadsRepository, eventBus events.Bus, cfg config.LeadIntakeConfig, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		eventBus:    eventBus,
		log:         log,
		loc:         cfg.GetLocation(),
		phoneRegion: cfg.GetPhoneDefaultRegion(),
		now:         time.Now,
	}
}

// SetClock replaces the wall clock.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetDigestCache enables caching of the daily digest. Without one, digests
// are always computed live.
func (s *Service) SetDigestCache(cache DigestCache) {
	s.digests = cache
}

// evaluationTime is the single instant all classifications of one call share.
func (s *Service) evaluationTime() time.Time {
	return s.now().In(s.loc)
}

// Today returns the current calendar day in the configured location.
func (s *Service) Today() domain.Date {
	return domain.DateOf(s.evaluationTime())
}

// Submit stores a public form submission as a new lead with no actions.
func (s *Service) Submit(ctx context.Context, req transport.SubmitLeadRequest) (transport.LeadResponse, error) {
	params := repository.CreateLeadParams{
		Name:        sanitize.Line(req.Name),
		Email:       sanitize.Email(req.Email),
		Phone:       phone.NormalizeE164(req.Phone, s.phoneRegion),
		Website:     sanitize.Line(req.Website),
		Budget:      sanitize.Line(req.Budget),
		Service:     sanitize.Line(req.Service),
		StartTime:   sanitize.Line(req.StartTime),
		Designation: sanitize.Line(req.Designation),
		Description: sanitize.Text(req.Description),
	}
	if params.Name == "" {
		return transport.LeadResponse{}, apperr.Validation("name is required")
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	s.invalidateAfterWrite(ctx)

	now := s.evaluationTime()
	s.eventBus.Publish(ctx, events.LeadSubmitted{
		BaseEvent: events.NewBaseEventAt(now),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Service:   lead.Service,
	})

	s.log.WithContext(ctx).Info("lead submitted", "leadId", lead.ID, "service", lead.Service)
	return toLeadResponse(lead, now), nil
}

// LogAction appends an action to a lead and returns the lead reclassified.
// An empty actionBy defaults to the actor's name. nextFollowUp is stored
// trimmed, since the engine matches stage tokens literally on the stored value.
func (s *Service) LogAction(ctx context.Context, leadID uuid.UUID, actor Actor, req transport.AppendActionRequest) (transport.LeadResponse, error) {
	params := repository.AppendActionParams{
		ConnectionStatus: sanitize.Line(req.ConnectionStatus),
		ConnectedVia:     sanitize.Line(req.ConnectedVia),
		ClientStage:      sanitize.Line(req.ClientStage),
		Remarks:          sanitize.Text(req.Remarks),
		NextFollowUp:     strings.TrimSpace(req.NextFollowUp),
		ActionBy:         sanitize.Line(req.ActionBy),
	}
	if params.ActionBy == "" {
		params.ActionBy = actor.displayName()
	}

	lead, appended, err := s.repo.AppendAction(ctx, leadID, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound(msgLeadNotFound)
		}
		return transport.LeadResponse{}, err
	}
	s.invalidateAfterWrite(ctx)

	now := s.evaluationTime()
	before := domain.Classify(toDomainActions(withoutAction(lead.Actions, appended.Seq)), now)
	after, _ := classifyLead(lead, now)

	s.eventBus.Publish(ctx, events.LeadActionLogged{
		BaseEvent:    events.NewBaseEventAt(now),
		LeadID:       lead.ID,
		ActionID:     appended.ID,
		ActionBy:     appended.ActionBy,
		NextFollowUp: appended.NextFollowUp,
		Stage:        string(after.Stage),
		DueStatus:    string(after.DueStatus),
	})
	if before.Stage != after.Stage {
		s.eventBus.Publish(ctx, events.LeadStageChanged{
			BaseEvent: events.NewBaseEventAt(now),
			LeadID:    lead.ID,
			From:      string(before.Stage),
			To:        string(after.Stage),
			ActionBy:  appended.ActionBy,
		})
	}

	return toLeadResponse(lead, now), nil
}

// Get returns one lead with its history and current classification.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound(msgLeadNotFound)
		}
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead, s.evaluationTime()), nil
}

func (a Actor) displayName() string {
	if name := strings.TrimSpace(a.Name); name != "" {
		return name
	}
	return strings.TrimSpace(a.Email)
}

func withoutAction(actions []repository.Action, seq int64) []repository.Action {
	out := make([]repository.Action, 0, len(actions))
	for _, action := range actions {
		if action.Seq != seq {
			out = append(out, action)
		}
	}
	return out
}
