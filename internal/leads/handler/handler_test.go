package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"followup_backend/internal/leads/domain"
	"followup_backend/internal/leads/service"
	"followup_backend/internal/leads/transport"
	"followup_backend/platform/apperr"
	"followup_backend/platform/httpkit"
	"followup_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const fmtExpectedStatus = "expected status %d, got %d: %s"

type fakeService struct {
	views      []domain.View
	lastActor  service.Actor
	lastAction transport.AppendActionRequest
	logErr     error
}

func (f *fakeService) Submit(_ context.Context, req transport.SubmitLeadRequest) (transport.LeadResponse, error) {
	return transport.LeadResponse{ID: uuid.New(), Name: req.Name}, nil
}

func (f *fakeService) LogAction(_ context.Context, id uuid.UUID, actor service.Actor, req transport.AppendActionRequest) (transport.LeadResponse, error) {
	f.lastActor = actor
	f.lastAction = req
	if f.logErr != nil {
		return transport.LeadResponse{}, f.logErr
	}
	return transport.LeadResponse{ID: id}, nil
}

func (f *fakeService) Get(_ context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	return transport.LeadResponse{}, apperr.NotFound("lead not found")
}

func (f *fakeService) ListView(_ context.Context, view domain.View) (transport.LeadListResponse, error) {
	f.views = append(f.views, view)
	return transport.LeadListResponse{View: string(view), Items: []transport.LeadResponse{}}, nil
}

func (f *fakeService) ListLatestActions(context.Context) (transport.LatestActionsResponse, error) {
	return transport.LatestActionsResponse{Items: []transport.LatestActionItem{}}, nil
}

func (f *fakeService) Digest(context.Context) (transport.DigestResponse, error) {
	return transport.DigestResponse{Date: "2024-03-10"}, nil
}

var staffID = uuid.New()

// newRouter mounts the handler the way the module does, with a stub auth
// middleware standing in for token validation.
func newRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := New(svc, validator.New())

	v1 := engine.Group("/api/v1")
	h.RegisterPublicRoutes(v1.Group("/leads"), func(c *gin.Context) { c.Next() })

	protected := v1.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextStaffIDKey, staffID)
		c.Set(httpkit.ContextStaffNameKey, "Priya")
		c.Set(httpkit.ContextStaffEmailKey, "priya@example.com")
		c.Next()
	})
	h.RegisterRoutes(protected.Group("/leads"))
	return engine
}

func do(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestListViewRouting(t *testing.T) {
	cases := []struct {
		path string
		want domain.View
	}{
		{"/api/v1/leads", domain.ViewAll},
		{"/api/v1/leads?view=overdue", domain.ViewOverdue},
		{"/api/v1/leads?view=Due_Today", domain.ViewDueToday},
		{"/api/v1/leads/all", domain.ViewAll},
		{"/api/v1/leads/active", domain.ViewActive},
		{"/api/v1/leads/closed", domain.ViewClosed},
		{"/api/v1/leads/onboarded", domain.ViewOnboarded},
		{"/api/v1/leads/notifications", domain.ViewDueToday},
		{"/api/v1/leads/overdue", domain.ViewOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			svc := &fakeService{}
			rec := do(newRouter(svc), http.MethodGet, tc.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf(fmtExpectedStatus, http.StatusOK, rec.Code, rec.Body.String())
			}
			if len(svc.views) != 1 || svc.views[0] != tc.want {
				t.Fatalf("expected view %s, got %v", tc.want, svc.views)
			}
		})
	}
}

func TestListRejectsUnknownView(t *testing.T) {
	svc := &fakeService{}
	rec := do(newRouter(svc), http.MethodGet, "/api/v1/leads?view=stale", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf(fmtExpectedStatus, http.StatusBadRequest, rec.Code, rec.Body.String())
	}
	if len(svc.views) != 0 {
		t.Fatal("expected the service not to be called")
	}
}

func TestSubmitValidation(t *testing.T) {
	engine := newRouter(&fakeService{})

	rec := do(engine, http.MethodPost, "/api/v1/leads/submit", map[string]string{"name": "Asha", "email": "not-an-email", "phone": "9876543210"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf(fmtExpectedStatus, http.StatusBadRequest, rec.Code, rec.Body.String())
	}
	var body httpkit.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != msgValidationFailed {
		t.Fatalf("unexpected error body %s", rec.Body.String())
	}

	rec = do(engine, http.MethodPost, "/api/v1/leads/submit", map[string]string{"name": "Asha", "email": "asha@example.com", "phone": "9876543210"})
	if rec.Code != http.StatusCreated {
		t.Fatalf(fmtExpectedStatus, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestAppendActionPassesActor(t *testing.T) {
	svc := &fakeService{}
	id := uuid.New()

	rec := do(newRouter(svc), http.MethodPost, "/api/v1/leads/"+id.String()+"/actions", map[string]string{"nextFollowUp": "close"})
	if rec.Code != http.StatusOK {
		t.Fatalf(fmtExpectedStatus, http.StatusOK, rec.Code, rec.Body.String())
	}
	if svc.lastActor.ID != staffID || svc.lastActor.Name != "Priya" {
		t.Fatalf("unexpected actor %+v", svc.lastActor)
	}
	if svc.lastAction.NextFollowUp != "close" {
		t.Fatalf("unexpected request %+v", svc.lastAction)
	}
}

func TestAppendActionMissingLead(t *testing.T) {
	svc := &fakeService{logErr: apperr.NotFound("lead not found")}
	rec := do(newRouter(svc), http.MethodPost, "/api/v1/leads/"+uuid.NewString()+"/actions", map[string]string{"nextFollowUp": "1"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf(fmtExpectedStatus, http.StatusNotFound, rec.Code, rec.Body.String())
	}
}

func TestBadLeadID(t *testing.T) {
	engine := newRouter(&fakeService{})
	if rec := do(engine, http.MethodGet, "/api/v1/leads/not-a-uuid", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf(fmtExpectedStatus, http.StatusBadRequest, rec.Code, rec.Body.String())
	}
	if rec := do(engine, http.MethodGet, "/api/v1/leads/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf(fmtExpectedStatus, http.StatusNotFound, rec.Code, rec.Body.String())
	}
}
