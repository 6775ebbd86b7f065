package webhook

import (
	apphttp "followup_backend/internal/http"
	"followup_backend/platform/config"
	"followup_backend/platform/logger"
	"followup_backend/platform/validator"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	enabled bool
	log     *logger.Logger
}

// NewModule creates the webhook module. Without a configured key the
// Google endpoint is not mounted.
func NewModule(leads LeadCreator, val *validator.Validator, cfg config.WebhookConfig, log *logger.Logger) *Module {
	key := cfg.GetGoogleLeadWebhookKey()
	return &Module{
		handler: NewHandler(leads, val, key, log),
		enabled: key != "",
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts webhook routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	if !m.enabled {
		m.log.Warn("GOOGLE_LEAD_WEBHOOK_KEY not configured; google lead webhook disabled")
		return
	}
	ctx.V1.POST("/webhook/google-leads", m.handler.HandleGoogleLeadWebhook)
}

var _ apphttp.Module = (*Module)(nil)
