package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"repuestos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthService struct {
	register func(req service.RegisterRequest) (*service.RegisteredUserResponse, error)
	login    func(req service.LoginRequest) (*service.TokenPairResponse, error)
	refresh  func(req service.RefreshRequest) (*service.TokenPairResponse, error)
	logout   func(refreshToken string) error
}

func (s *stubAuthService) Register(_ context.Context, req service.RegisterRequest) (*service.RegisteredUserResponse, error) {
	return s.register(req)
}

func (s *stubAuthService) Login(_ context.Context, req service.LoginRequest) (*service.TokenPairResponse, error) {
	return s.login(req)
}

func (s *stubAuthService) Refresh(_ context.Context, req service.RefreshRequest) (*service.TokenPairResponse, error) {
	return s.refresh(req)
}

func (s *stubAuthService) Logout(_ context.Context, refreshToken string) error {
	return s.logout(refreshToken)
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAuthHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func TestRegisterEndpoint(t *testing.T) {
	svc := &stubAuthService{
		register: func(req service.RegisterRequest) (*service.RegisteredUserResponse, error) {
			return &service.RegisteredUserResponse{ID: 1, Username: req.Username, Email: req.Email, Role: "User"}, nil
		},
	}
	router := newAuthRouter(svc)

	rec := doRequest(router, http.MethodPost, "/auth/register-user",
		`{"username":"tester","email":"a@b.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	// duplicate email surfaces as 400, per the register contract
	svc.register = func(req service.RegisterRequest) (*service.RegisteredUserResponse, error) {
		return nil, fmt.Errorf("user %s: %w", req.Email, service.ErrAlreadyExists)
	}
	rec = doRequest(router, http.MethodPost, "/auth/register-user",
		`{"username":"tester","email":"a@b.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed email rejected at bind time
	rec = doRequest(router, http.MethodPost, "/auth/register-user",
		`{"username":"tester","email":"not-an-email","password":"secret123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	svc := &stubAuthService{
		login: func(req service.LoginRequest) (*service.TokenPairResponse, error) {
			return &service.TokenPairResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresAt:    time.Now().UTC().Add(10 * time.Minute),
			}, nil
		},
	}
	router := newAuthRouter(svc)

	rec := doRequest(router, http.MethodPost, "/auth/login-user",
		`{"email":"a@b.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")

	svc.login = func(req service.LoginRequest) (*service.TokenPairResponse, error) {
		return nil, service.ErrInvalidCredentials
	}
	rec = doRequest(router, http.MethodPost, "/auth/login-user",
		`{"email":"a@b.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "access_token")
}

func TestRefreshEndpoint(t *testing.T) {
	svc := &stubAuthService{
		refresh: func(req service.RefreshRequest) (*service.TokenPairResponse, error) {
			return &service.TokenPairResponse{
				AccessToken:  "new-access",
				RefreshToken: req.RefreshToken,
				ExpiresAt:    time.Now().UTC().Add(10 * time.Minute),
			}, nil
		},
	}
	router := newAuthRouter(svc)

	rec := doRequest(router, http.MethodPost, "/auth/refresh-token",
		`{"access_token":"expired","refresh_token":"refresh"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.refresh = func(req service.RefreshRequest) (*service.TokenPairResponse, error) {
		return nil, service.ErrTokenNotExpired
	}
	rec = doRequest(router, http.MethodPost, "/auth/refresh-token",
		`{"access_token":"valid","refresh_token":"refresh"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.refresh = func(req service.RefreshRequest) (*service.TokenPairResponse, error) {
		return nil, service.ErrInvalidToken
	}
	rec = doRequest(router, http.MethodPost, "/auth/refresh-token",
		`{"access_token":"expired","refresh_token":"bogus"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	svc := &stubAuthService{
		logout: func(refreshToken string) error { return nil },
	}
	router := newAuthRouter(svc)

	rec := doRequest(router, http.MethodPost, "/auth/logout", `{"refresh_token":"refresh"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.logout = func(refreshToken string) error {
		return fmt.Errorf("refresh token: %w", service.ErrNotFound)
	}
	rec = doRequest(router, http.MethodPost, "/auth/logout", `{"refresh_token":"unknown"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
