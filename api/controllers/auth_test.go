package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/akazakov/shoplite-backend/api/middleware"
	authsvc "github.com/akazakov/shoplite-backend/internal/auth"
	"github.com/akazakov/shoplite-backend/internal/users"
	pkgerrors "github.com/akazakov/shoplite-backend/pkg/errors"
)

type stubAuthService struct {
	response     *authsvc.AuthResponse
	pair         *authsvc.TokenPair
	err          error
	loggedOut    []string
	lastRegister authsvc.RegisterRequest
}

func (s *stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	s.lastRegister = req
	return s.response, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	return s.response, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOut = append(s.loggedOut, accessID)
	return s.err
}

func authResponseFixture() *authsvc.AuthResponse {
	return &authsvc.AuthResponse{
		Tokens: authsvc.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		User: users.Profile{
			ID:    uuid.New(),
			Email: "buyer@example.com",
			Roles: []string{"User"},
		},
	}
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &stubAuthService{response: authResponseFixture()}
	handler := AuthRegister(svc, nil)

	body := `{"username":"ada","email":"buyer@example.com","password":"hunter2hunter2","first_name":"Ada","last_name":"Byron"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body)))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastRegister.Email != "buyer@example.com" {
		t.Fatalf("unexpected register payload: %+v", svc.lastRegister)
	}
}

func TestAuthRegisterValidatesBody(t *testing.T) {
	handler := AuthRegister(&stubAuthService{}, nil)

	body := `{"username":"ada","email":"not-an-email","password":"short"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body)))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code got %s", envelope.Error.Code)
	}
	if _, ok := envelope.Error.Details["email"]; !ok {
		t.Fatalf("expected email field detail, got %v", envelope.Error.Details)
	}
}

func TestAuthLoginUnauthorized(t *testing.T) {
	handler := AuthLogin(&stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	body := `{"email":"buyer@example.com","password":"wrong-password"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRefreshReturnsPair(t *testing.T) {
	handler := AuthRefresh(&stubAuthService{pair: &authsvc.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}}, nil)

	body := `{"access_token":"expired","refresh_token":"refresh"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(body)))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data authsvc.TokenPair `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "new-access" {
		t.Fatalf("unexpected pair: %+v", envelope.Data)
	}
}

func TestAuthLogoutUsesAccessIDFromContext(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "jti-123"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "jti-123" {
		t.Fatalf("expected logout with jti, got %v", svc.loggedOut)
	}
}
