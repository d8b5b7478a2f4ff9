package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sukalov/shitsu/api/middleware"
	"github.com/sukalov/shitsu/internal/admin"
)

type stubAdminService struct {
	exists       bool
	loginResult  *admin.LoginResult
	loggedOutID  string
	gateResolver func(ctx context.Context) (bool, error)
}

func (s *stubAdminService) CheckAdminExists(ctx context.Context) (bool, error) {
	return s.exists, nil
}

func (s *stubAdminService) SetupAdmin(ctx context.Context, password string) error {
	panic("unimplemented")
}

func (s *stubAdminService) Login(ctx context.Context, password string) (*admin.LoginResult, error) {
	return s.loginResult, nil
}

func (s *stubAdminService) ChangePassword(ctx context.Context, current, updated string) error {
	panic("unimplemented")
}

func (s *stubAdminService) Logout(ctx context.Context, accessID string) error {
	s.loggedOutID = accessID
	return nil
}

func (s *stubAdminService) SessionGate(token string) *admin.Gate {
	return admin.NewGate(s.gateResolver)
}

func TestAdminExists(t *testing.T) {
	logg := testLogger()
	stub := &stubAdminService{exists: true}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/exists", nil)
	rec := httptest.NewRecorder()
	AdminExists(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !envelope.Data["exists"] {
		t.Fatalf("expected exists=true")
	}
}

func TestLoginPassesResultThrough(t *testing.T) {
	logg := testLogger()
	stub := &stubAdminService{loginResult: &admin.LoginResult{Success: false}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"password":"nope"}`))
	rec := httptest.NewRecorder()
	Login(stub, logg).ServeHTTP(rec, req)

	// a failed login is still a 200 with success=false
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "token") {
		t.Fatalf("expected no token in a failed login response")
	}
}

func TestLogout(t *testing.T) {
	logg := testLogger()

	t.Run("no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/logout", nil)
		rec := httptest.NewRecorder()
		Logout(&stubAdminService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without a session, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubAdminService{}
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/logout", nil)
		req = req.WithContext(middleware.WithSessionID(req.Context(), "jti-1"))
		rec := httptest.NewRecorder()
		Logout(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.loggedOutID != "jti-1" {
			t.Fatalf("expected the session id to be revoked")
		}
	})
}

func TestSessionState(t *testing.T) {
	logg := testLogger()

	t.Run("authenticated", func(t *testing.T) {
		stub := &stubAdminService{gateResolver: func(ctx context.Context) (bool, error) { return true, nil }}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		SessionState(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"state":"authenticated"`) {
			t.Fatalf("expected authenticated state, got %s", rec.Body.String())
		}
	})

	t.Run("unauthenticated without token", func(t *testing.T) {
		stub := &stubAdminService{gateResolver: func(ctx context.Context) (bool, error) { return false, nil }}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
		rec := httptest.NewRecorder()
		SessionState(stub, logg).ServeHTTP(rec, req)

		if !strings.Contains(rec.Body.String(), `"state":"unauthenticated"`) {
			t.Fatalf("expected unauthenticated state, got %s", rec.Body.String())
		}
	})
}
