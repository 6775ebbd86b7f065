package auth

import (
	"followup_backend/internal/auth/handler"
	"followup_backend/internal/auth/repository"
	"followup_backend/internal/auth/service"
	authvalidator "followup_backend/internal/auth/validator"
	"followup_backend/internal/events"
	apphttp "followup_backend/internal/http"
	"followup_backend/platform/config"
	"followup_backend/platform/logger"
	"followup_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the auth module and registers its validation rules on val.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := authvalidator.Register(val); err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	svc := service.New(repo, cfg, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.V1.POST("/auth/sign-out", ctx.AuthMiddleware, m.handler.SignOut)
	ctx.Protected.GET("/users/me", m.handler.GetMe)
}

var _ apphttp.Module = (*Module)(nil)
