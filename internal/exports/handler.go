package exports

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"followup_backend/internal/leads/domain"
	"followup_backend/internal/leads/transport"
	"followup_backend/platform/apperr"
	"followup_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// ViewLister is the slice of the leads service the export needs.
type ViewLister interface {
	ListView(ctx context.Context, view domain.View) (transport.LeadListResponse, error)
}

// Handler streams lead views as CSV.
type Handler struct {
	leads ViewLister
}

func NewHandler(leads ViewLister) *Handler {
	return &Handler{leads: leads}
}

func (h *Handler) ExportLeadsCSV(c *gin.Context) {
	view, err := domain.ParseView(c.Query("view"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(err.Error()).WithDetails(gin.H{"views": domain.Views()}))
		return
	}

	list, err := h.leads.ListView(c.Request.Context(), view)
	if httpkit.HandleError(c, err) {
		return
	}

	writer, ok := startCsvResponse(c, list)
	if !ok {
		return
	}
	for _, lead := range list.Items {
		if err := writer.Write(leadRow(lead)); err != nil {
			return
		}
	}
	writer.Flush()
}

// ---- Helpers ----

func csvHeaders() []string {
	return []string{
		"Lead ID",
		"Name",
		"Email",
		"Phone",
		"Service",
		"Budget",
		"Submitted At",
		"Stage",
		"Due Status",
		"Follow-up Date",
		"Actions",
		"Last Remarks",
		"Last Action By",
	}
}

func leadRow(lead transport.LeadResponse) []string {
	followUp := ""
	if lead.Classification.CommitmentDate != nil {
		followUp = *lead.Classification.CommitmentDate
	}

	var remarks, actionBy string
	if latest := latestAction(lead); latest != nil {
		remarks = latest.Remarks
		actionBy = latest.ActionBy
	}

	return []string{
		lead.ID.String(),
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Service,
		lead.Budget,
		lead.CreatedAt.UTC().Format(dateTimeLayout),
		lead.Classification.Stage,
		lead.Classification.DueStatus,
		followUp,
		strconv.Itoa(len(lead.Actions)),
		remarks,
		actionBy,
	}
}

// latestAction returns the action lead's classification was derived from.
func latestAction(lead transport.LeadResponse) *transport.ActionResponse {
	if lead.LatestActionID == nil {
		return nil
	}
	for i := range lead.Actions {
		if lead.Actions[i].ID == *lead.LatestActionID {
			return &lead.Actions[i]
		}
	}
	return nil
}

func exportFilename(list transport.LeadListResponse) string {
	view := strings.ReplaceAll(list.View, "_", "-")
	return fmt.Sprintf("leads-%s-%s.csv", view, list.Today)
}

func startCsvResponse(c *gin.Context, list transport.LeadListResponse) (*csv.Writer, bool) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+exportFilename(list))
	c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(csvHeaders()); err != nil {
		return nil, false
	}
	return writer, true
}
