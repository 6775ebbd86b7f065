package handler

import (
	"context"
	"net/http"

	"followup_backend/internal/auth/transport"
	authvalidator "followup_backend/internal/auth/validator"
	"followup_backend/platform/httpkit"
	"followup_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthService is what the handlers need from the auth service.
type AuthService interface {
	SignUp(ctx context.Context, req transport.SignUpRequest) (transport.ProfileResponse, error)
	SignIn(ctx context.Context, req transport.SignInRequest) (transport.SignInResponse, error)
	SignOut(ctx context.Context, staffID uuid.UUID)
	GetMe(ctx context.Context, staffID uuid.UUID) (transport.ProfileResponse, error)
}

type Handler struct {
	svc AuthService
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc AuthService, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.SignUp)
	rg.POST("/sign-in", h.SignIn)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		fields := validator.Fields(err)
		if fields["password"] == "strongpassword" {
			httpkit.Error(c, http.StatusBadRequest, authvalidator.PasswordPolicy, fields)
			return
		}
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, fields)
		return
	}

	profile, err := h.svc.SignUp(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, profile)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	resp, err := h.svc.SignIn(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// SignOut requires a valid token so the event is attributable.
func (h *Handler) SignOut(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	h.svc.SignOut(c.Request.Context(), identity.StaffID())
	httpkit.OK(c, transport.MessageResponse{Message: "signed out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	profile, err := h.svc.GetMe(c.Request.Context(), identity.StaffID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}
