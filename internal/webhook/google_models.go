package webhook

import "github.com/google/uuid"

// Google Lead Form webhook payload structures based on:
// https://developers.google.com/google-ads/webhook/docs/implementation

// GoogleLeadPayload represents the webhook payload from Google Ads Lead Forms.
type GoogleLeadPayload struct {
	GoogleKey      string             `json:"google_key"`       // Authentication key
	LeadID         string             `json:"lead_id"`          // Unique lead identifier
	CampaignID     int64              `json:"campaign_id"`      // Google Ads campaign ID
	FormID         int64              `json:"form_id"`          // Lead form ID
	GCLID          string             `json:"gclid"`            // Google Click ID
	UserColumnData []GoogleColumnData `json:"user_column_data"` // Form field data
	IsTest         bool               `json:"is_test"`          // Test lead flag
	APIVersion     string             `json:"api_version"`      // Google API version
	GCLIDURL       string             `json:"gclidurl"`         // Landing page URL
	CampaignName   string             `json:"campaign_name"`    // Campaign name (optional)
	FormName       string             `json:"form_name"`        // Form name (optional)
}

// GoogleColumnData represents a single form field from Google Lead Form.
type GoogleColumnData struct {
	ColumnID    string `json:"column_id"`
	StringValue string `json:"string_value"`
	ColumnName  string `json:"column_name"`
}

type GoogleLeadWebhookResponse struct {
	LeadID  *uuid.UUID `json:"leadId,omitempty"`
	IsTest  bool       `json:"isTest"`
	Message string     `json:"message"`
}
