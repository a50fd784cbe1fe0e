package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jordanvasquez/threadline-backend/api/middleware"
	"github.com/jordanvasquez/threadline-backend/internal/auth"
	"github.com/jordanvasquez/threadline-backend/internal/users"
	"github.com/jordanvasquez/threadline-backend/pkg/config"
	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
)

func testAppConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test"}}
}

type stubAuthService struct {
	registerResp *auth.AuthResponse
	registerErr  error
	loginResp    *auth.AuthResponse
	loginErr     error
	logoutErr    error
	meResp       *users.UserDTO
	meErr        error

	lastAccessID string
	lastUserID   uuid.UUID
}

func (s *stubAuthService) Register(_ context.Context, _ auth.RegisterRequest) (*auth.AuthResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (*auth.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.lastAccessID = accessID
	return s.logoutErr
}

func (s *stubAuthService) Me(_ context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	s.lastUserID = userID
	return s.meResp, s.meErr
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterController(t *testing.T) {
	logg := testLogger()

	t.Run("created", func(t *testing.T) {
		svc := &stubAuthService{registerResp: &auth.AuthResponse{AccessToken: "token"}}
		rec := httptest.NewRecorder()
		body := `{"email": "alice@example.com", "password": "sturdy-passphrase", "name": "Alice"}`
		Register(svc, logg).ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/register", body))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc := &stubAuthService{}
		rec := httptest.NewRecorder()
		body := `{"email": "alice@example.com", "password": "short", "name": "Alice"}`
		Register(svc, logg).ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/register", body))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate email responds 409", func(t *testing.T) {
		svc := &stubAuthService{registerErr: pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")}
		rec := httptest.NewRecorder()
		body := `{"email": "alice@example.com", "password": "sturdy-passphrase", "name": "Alice"}`
		Register(svc, logg).ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/register", body))

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestLoginController(t *testing.T) {
	logg := testLogger()

	t.Run("ok", func(t *testing.T) {
		svc := &stubAuthService{loginResp: &auth.AuthResponse{AccessToken: "token"}}
		rec := httptest.NewRecorder()
		body := `{"email": "alice@example.com", "password": "sturdy-passphrase"}`
		Login(svc, logg).ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/login", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("bad credentials respond 401", func(t *testing.T) {
		svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
		rec := httptest.NewRecorder()
		body := `{"email": "alice@example.com", "password": "wrong-password"}`
		Login(svc, logg).ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/auth/login", body))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestLogoutController(t *testing.T) {
	logg := testLogger()
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	accessID := uuid.NewString()
	req = req.WithContext(middleware.WithAccessID(req.Context(), accessID))
	rec := httptest.NewRecorder()
	Logout(svc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastAccessID != accessID {
		t.Fatalf("service called with access id %q", svc.lastAccessID)
	}
}

func TestMeController(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := &stubAuthService{meResp: &users.UserDTO{ID: userID, Email: "alice@example.com"}}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
		rec := httptest.NewRecorder()
		Me(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.lastUserID != userID {
			t.Fatalf("service called with %s", svc.lastUserID)
		}
	})

	t.Run("missing identity responds 401", func(t *testing.T) {
		svc := &stubAuthService{}
		rec := httptest.NewRecorder()
		Me(svc, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
