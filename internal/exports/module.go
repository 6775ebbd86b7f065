package exports

import (
	apphttp "followup_backend/internal/http"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates the exports module on top of the leads view listing.
func NewModule(leads ViewLister) *Module {
	return &Module{handler: NewHandler(leads)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes mounts export routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/exports/leads.csv", m.handler.ExportLeadsCSV)
}

var _ apphttp.Module = (*Module)(nil)
