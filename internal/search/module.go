package search

import (
	apphttp "followup_backend/internal/http"
	"followup_backend/internal/search/handler"
	"followup_backend/internal/search/repository"
	"followup_backend/internal/search/service"
	"followup_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the lead search module implementing http.Module. It reads the
// leads tables directly; it never classifies, so results carry no stage.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the search repository over the shared pool.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	return &Module{
		handler: handler.New(service.New(repository.New(pool)), val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "search"
}

// RegisterRoutes mounts GET /search behind staff authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/search"))
}

var _ apphttp.Module = (*Module)(nil)
