package webhook

import (
	"strings"

	"followup_backend/internal/leads/transport"
)

// Field keys shared by the column mapper and the request builder.
const (
	fieldFullName    = "fullName"
	fieldFirstName   = "firstName"
	fieldLastName    = "lastName"
	fieldEmail       = "email"
	fieldPhone       = "phone"
	fieldWebsite     = "website"
	fieldBudget      = "budget"
	fieldService     = "service"
	fieldStartTime   = "startTime"
	fieldDesignation = "designation"
	fieldMessage     = "message"
	fieldCompany     = "companyName"
)

// ExtractGoogleLeadFields maps Google Lead Form data into a flat map keyed by
// the enquiry form's field names. Unknown columns keep their own label.
func ExtractGoogleLeadFields(payload GoogleLeadPayload) map[string]string {
	fields := make(map[string]string)

	for _, col := range payload.UserColumnData {
		key := normalizeGoogleFieldName(col.ColumnID, col.ColumnName)
		value := strings.TrimSpace(col.StringValue)
		if key != "" && value != "" {
			fields[key] = value
		}
	}

	if payload.GCLIDURL != "" {
		fields["landing_page"] = payload.GCLIDURL
	}

	return fields
}

// normalizeGoogleFieldName prefers Google's stable column ids and falls back
// to matching the human-readable label of custom questions.
func normalizeGoogleFieldName(columnID, columnName string) string {
	switch strings.ToUpper(strings.TrimSpace(columnID)) {
	case "FULL_NAME":
		return fieldFullName
	case "FIRST_NAME":
		return fieldFirstName
	case "LAST_NAME":
		return fieldLastName
	case "EMAIL", "WORK_EMAIL":
		return fieldEmail
	case "PHONE_NUMBER", "WORK_PHONE":
		return fieldPhone
	case "JOB_TITLE":
		return fieldDesignation
	case "COMPANY_NAME":
		return fieldCompany
	}

	label := strings.ToLower(strings.TrimSpace(columnName))

	switch {
	case containsAny(label, "first", "given"):
		return fieldFirstName
	case containsAny(label, "last", "surname", "family"):
		return fieldLastName
	case containsAny(label, "email", "e-mail"):
		return fieldEmail
	case containsAny(label, "phone", "mobile", "whatsapp"):
		return fieldPhone
	case containsAny(label, "website", "url", "site"):
		return fieldWebsite
	case containsAny(label, "budget"):
		return fieldBudget
	case containsAny(label, "service", "interested in", "requirement"):
		return fieldService
	case containsAny(label, "start", "when", "timeline"):
		return fieldStartTime
	case containsAny(label, "designation", "job title", "role", "position"):
		return fieldDesignation
	case containsAny(label, "company", "business", "organisation", "organization"):
		return fieldCompany
	case containsAny(label, "message", "comment", "details", "question"):
		return fieldMessage
	case containsAny(label, "name"):
		return fieldFullName
	default:
		return strings.TrimSpace(columnName)
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// ToSubmitRequest builds an enquiry form submission from extracted fields.
// The campaign name stands in for the service when the form did not ask.
func ToSubmitRequest(payload GoogleLeadPayload, fields map[string]string) transport.SubmitLeadRequest {
	name := fields[fieldFullName]
	if name == "" {
		name = strings.TrimSpace(fields[fieldFirstName] + " " + fields[fieldLastName])
	}

	service := fields[fieldService]
	if service == "" {
		service = payload.CampaignName
	}

	var notes []string
	if msg := fields[fieldMessage]; msg != "" {
		notes = append(notes, msg)
	}
	if company := fields[fieldCompany]; company != "" {
		notes = append(notes, "Company: "+company)
	}
	if payload.FormName != "" {
		notes = append(notes, "Google lead form: "+payload.FormName)
	}

	return transport.SubmitLeadRequest{
		Name:        name,
		Email:       fields[fieldEmail],
		Phone:       fields[fieldPhone],
		Website:     fields[fieldWebsite],
		Budget:      fields[fieldBudget],
		Service:     service,
		StartTime:   fields[fieldStartTime],
		Designation: fields[fieldDesignation],
		Description: strings.Join(notes, "\n"),
	}
}
