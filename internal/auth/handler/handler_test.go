package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"followup_backend/internal/auth/transport"
	authvalidator "followup_backend/internal/auth/validator"
	"followup_backend/platform/apperr"
	"followup_backend/platform/httpkit"
	"followup_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeAuth struct {
	signedOut uuid.UUID
}

func (f *fakeAuth) SignUp(_ context.Context, req transport.SignUpRequest) (transport.ProfileResponse, error) {
	return transport.ProfileResponse{ID: uuid.NewString(), Name: req.Name, Email: req.Email}, nil
}

func (f *fakeAuth) SignIn(_ context.Context, req transport.SignInRequest) (transport.SignInResponse, error) {
	if req.Password != "S3cure!pass" {
		return transport.SignInResponse{}, apperr.Unauthorized("invalid email or password")
	}
	return transport.SignInResponse{Name: "Priya", Email: req.Email, Token: "tok"}, nil
}

func (f *fakeAuth) SignOut(_ context.Context, staffID uuid.UUID) { f.signedOut = staffID }

func (f *fakeAuth) GetMe(_ context.Context, staffID uuid.UUID) (transport.ProfileResponse, error) {
	return transport.ProfileResponse{ID: staffID.String()}, nil
}

func newRouter(t *testing.T, svc *fakeAuth, staffID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	val := validator.New()
	if err := authvalidator.Register(val); err != nil {
		t.Fatal(err)
	}
	h := New(svc, val)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/auth"))
	protected := engine.Group("")
	protected.Use(func(c *gin.Context) {
		if staffID != uuid.Nil {
			c.Set(httpkit.ContextStaffIDKey, staffID)
		}
		c.Next()
	})
	protected.POST("/auth/sign-out", h.SignOut)
	protected.GET("/users/me", h.GetMe)
	return engine
}

func post(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestSignUpWeakPassword(t *testing.T) {
	rec := post(newRouter(t, &fakeAuth{}, uuid.Nil), "/auth/sign-up", map[string]string{
		"name": "Priya", "email": "priya@example.com", "password": "password",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body httpkit.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != authvalidator.PasswordPolicy {
		t.Fatalf("expected password policy message, got %q", body.Error)
	}
}

func TestSignUpCreated(t *testing.T) {
	rec := post(newRouter(t, &fakeAuth{}, uuid.Nil), "/auth/sign-up", map[string]string{
		"name": "Priya", "email": "priya@example.com", "password": "S3cure!pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSignIn(t *testing.T) {
	engine := newRouter(t, &fakeAuth{}, uuid.Nil)

	rec := post(engine, "/auth/sign-in", map[string]string{"email": "priya@example.com", "password": "S3cure!pass"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp transport.SignInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token != "tok" || resp.Name != "Priya" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = post(engine, "/auth/sign-in", map[string]string{"email": "priya@example.com", "password": "bad"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSignOutNeedsIdentity(t *testing.T) {
	if rec := post(newRouter(t, &fakeAuth{}, uuid.Nil), "/auth/sign-out", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	svc := &fakeAuth{}
	id := uuid.New()
	if rec := post(newRouter(t, svc, id), "/auth/sign-out", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.signedOut != id {
		t.Fatal("expected sign-out to be attributed to the caller")
	}
}
