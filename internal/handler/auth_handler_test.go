package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollbase/internal/domain"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

type fakeAuthService struct {
	loginFn    func(*domain.LoginRequest) (*domain.Session, error)
	registerFn func(*domain.RegisterRequest) (*domain.Session, error)
}

func (f *fakeAuthService) Login(_ context.Context, req *domain.LoginRequest) (*domain.Session, error) {
	return f.loginFn(req)
}

func (f *fakeAuthService) Register(_ context.Context, req *domain.RegisterRequest) (*domain.Session, error) {
	return f.registerFn(req)
}

func (f *fakeAuthService) ValidateToken(context.Context, string) (*domain.Identity, error) {
	return nil, errors.NewUnauthenticatedError("Invalid or expired token")
}

func TestLoginSuccess(t *testing.T) {
	authService := &fakeAuthService{
		loginFn: func(req *domain.LoginRequest) (*domain.Session, error) {
			require.Equal(t, "user@example.com", req.Email)
			return &domain.Session{AccessToken: "token-123", TokenType: "bearer", ExpiresIn: 3600}, nil
		},
	}
	h := NewAuthHandler(authService, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, domain.LoginRequest{
		Email:    "user@example.com",
		Password: "Str0ngEnough",
	}))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Session *domain.Session `json:"session"`
		Error   interface{}     `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Session)
	assert.Equal(t, "token-123", resp.Session.AccessToken)
	assert.Nil(t, resp.Error)
}

func TestLoginFailureUsesGenericMessage(t *testing.T) {
	authService := &fakeAuthService{
		loginFn: func(*domain.LoginRequest) (*domain.Session, error) {
			return nil, errors.NewUnauthenticatedError("Invalid email or password")
		},
	}
	h := NewAuthHandler(authService, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, domain.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	}))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid email or password", resp.Error.Message)
}

func TestRegisterReturnsCreated(t *testing.T) {
	authService := &fakeAuthService{
		registerFn: func(*domain.RegisterRequest) (*domain.Session, error) {
			return &domain.Session{AccessToken: "token-456"}, nil
		},
	}
	h := NewAuthHandler(authService, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, domain.RegisterRequest{
		Email:    "new@example.com",
		Password: "Str0ngEnough",
		Name:     "New User",
	}))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
