package webhook

import (
	"context"
	"crypto/subtle"
	"net/http"

	"followup_backend/internal/leads/transport"
	"followup_backend/platform/httpkit"
	"followup_backend/platform/logger"
	"followup_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// LeadCreator is the lead intake operation webhooks feed into.
type LeadCreator interface {
	Submit(ctx context.Context, req transport.SubmitLeadRequest) (transport.LeadResponse, error)
}

type Handler struct {
	leads     LeadCreator
	val       *validator.Validator
	googleKey string
	log       *logger.Logger
}

func NewHandler(leads LeadCreator, val *validator.Validator, googleKey string, log *logger.Logger) *Handler {
	return &Handler{leads: leads, val: val, googleKey: googleKey, log: log}
}

// HandleGoogleLeadWebhook processes Google Lead Form webhook payloads.
// POST /api/v1/webhook/google-leads
func (h *Handler) HandleGoogleLeadWebhook(c *gin.Context) {
	var payload GoogleLeadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	if payload.GoogleKey == "" {
		httpkit.Error(c, http.StatusUnauthorized, "missing google_key", nil)
		return
	}
	if subtle.ConstantTimeCompare([]byte(payload.GoogleKey), []byte(h.googleKey)) != 1 {
		httpkit.Error(c, http.StatusUnauthorized, "invalid google_key", nil)
		return
	}

	log := h.log.WithContext(c.Request.Context())

	// Google sends test leads from the form editor; acknowledge without storing.
	if payload.IsTest {
		log.Info("google test lead received", "form_id", payload.FormID, "campaign_id", payload.CampaignID)
		c.JSON(http.StatusOK, GoogleLeadWebhookResponse{IsTest: true, Message: "Test lead received"})
		return
	}

	req := ToSubmitRequest(payload, ExtractGoogleLeadFields(payload))
	if err := h.val.Struct(req); err != nil {
		log.Warn("google lead rejected", "google_lead_id", payload.LeadID, "fields", validator.Fields(err))
		httpkit.Error(c, http.StatusUnprocessableEntity, "lead form is missing required fields", validator.Fields(err))
		return
	}

	lead, err := h.leads.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	log.Info("google lead stored", "google_lead_id", payload.LeadID, "lead_id", lead.ID)
	c.JSON(http.StatusOK, GoogleLeadWebhookResponse{
		LeadID:  &lead.ID,
		Message: "Lead created",
	})
}
