package leads

import (
	"context"

	"followup_backend/internal/events"
	apphttp "followup_backend/internal/http"
	"followup_backend/internal/leads/handler"
	"followup_backend/internal/leads/repository"
	"followup_backend/internal/leads/service"
	"followup_backend/platform/config"
	"followup_backend/platform/logger"
	"followup_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the leads module and subscribes its event handlers.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg config.LeadIntakeConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, cfg, log)
	registerEventHandlers(eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// registerEventHandlers keeps the activity trail in the log. Digest
// invalidation is not here: the service does it before a write returns.
func registerEventHandlers(eventBus events.Bus, log *logger.Logger) {
	eventBus.Subscribe(events.LeadStageChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadStageChanged)
		if !ok {
			return nil
		}
		log.WithContext(ctx).StageChanged(e.LeadID.String(), e.From, e.To, e.ActionBy)
		return nil
	}))
}

// SetDigestCache enables the redis digest cache.
func (m *Module) SetDigestCache(cache service.DigestCache) {
	m.service.SetDigestCache(cache)
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the leads service for binaries that run it without HTTP.
func (m *Module) Service() *service.Service {
	return m.service
}

// DigestRefresher exposes digest rebuilding to the scheduler.
func (m *Module) DigestRefresher() DigestRefresher {
	return m.service
}

// RegisterRoutes mounts the public form endpoint and the staff routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1.Group("/leads"), ctx.SubmitRateLimiter.RateLimit())
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
