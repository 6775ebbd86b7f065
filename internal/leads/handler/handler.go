package handler

import (
	"context"
	"net/http"

	"followup_backend/internal/leads/domain"
	"followup_backend/internal/leads/service"
	"followup_backend/internal/leads/transport"
	"followup_backend/platform/apperr"
	"followup_backend/platform/httpkit"
	"followup_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeadService is what the handlers need from the leads service.
type LeadService interface {
	Submit(ctx context.Context, req transport.SubmitLeadRequest) (transport.LeadResponse, error)
	LogAction(ctx context.Context, leadID uuid.UUID, actor service.Actor, req transport.AppendActionRequest) (transport.LeadResponse, error)
	Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error)
	ListView(ctx context.Context, view domain.View) (transport.LeadListResponse, error)
	ListLatestActions(ctx context.Context) (transport.LatestActionsResponse, error)
	Digest(ctx context.Context) (transport.DigestResponse, error)
}

type Handler struct {
	svc LeadService
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidLeadID    = "invalid lead id"
)

func New(svc LeadService, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes mounts the enquiry form endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, limiter gin.HandlerFunc) {
	rg.POST("/submit", limiter, h.Submit)
}

// RegisterRoutes mounts the staff endpoints; rg must already be authenticated.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/all", h.listFixed(domain.ViewAll))
	rg.GET("/active", h.listFixed(domain.ViewActive))
	rg.GET("/closed", h.listFixed(domain.ViewClosed))
	rg.GET("/onboarded", h.listFixed(domain.ViewOnboarded))
	rg.GET("/notifications", h.listFixed(domain.ViewDueToday))
	rg.GET("/overdue", h.listFixed(domain.ViewOverdue))
	rg.GET("/latest-actions", h.LatestActions)
	rg.GET("/digest", h.Digest)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/actions", h.AppendAction)
}

func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	lead, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, lead)
}

// List serves GET /leads?view=<name>; an empty view means all.
func (h *Handler) List(c *gin.Context) {
	view, err := domain.ParseView(c.Query("view"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(err.Error()).WithDetails(gin.H{"views": domain.Views()}))
		return
	}
	h.respondView(c, view)
}

func (h *Handler) listFixed(view domain.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respondView(c, view)
	}
}

func (h *Handler) respondView(c *gin.Context, view domain.View) {
	resp, err := h.svc.ListView(c.Request.Context(), view)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) LatestActions(c *gin.Context) {
	resp, err := h.svc.ListLatestActions(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Digest(c *gin.Context) {
	resp, err := h.svc.Digest(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) AppendAction(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	var req transport.AppendActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	actor := service.Actor{ID: identity.StaffID(), Name: identity.Name(), Email: identity.Email()}
	lead, err := h.svc.LogAction(c.Request.Context(), id, actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}
