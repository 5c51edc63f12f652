package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pollbase/internal/domain"
	"pollbase/internal/validation"
	"pollbase/pkg/errors"
	"pollbase/pkg/logger"
)

// Service signs users in and up against the platform's auth endpoints and
// validates the access tokens it issues. Platform error detail is logged
// here and never surfaces to callers.
type Service struct {
	supabaseURL string
	anonKey     string
	jwtSecret   string
	httpClient  *http.Client
	logger      *logger.Logger
}

// NewService creates a new auth service
func NewService(supabaseURL, anonKey, jwtSecret string, logger *logger.Logger) *Service {
	return &Service{
		supabaseURL: strings.TrimRight(supabaseURL, "/"),
		anonKey:     anonKey,
		jwtSecret:   jwtSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Login exchanges credentials for a platform session. Any upstream
// failure maps to the same generic message so callers cannot tell a
// wrong password from a nonexistent account.
func (s *Service) Login(ctx context.Context, req *domain.LoginRequest) (*domain.Session, error) {
	emailRes := validation.ValidateEmail(req.Email)
	var fieldErrs []string
	fieldErrs = append(fieldErrs, emailRes.Errors...)
	if req.Password == "" {
		fieldErrs = append(fieldErrs, "Password is required")
	}
	if len(fieldErrs) > 0 {
		return nil, errors.NewValidationError("Invalid login request", fieldErrs)
	}

	body := map[string]string{
		"email":    emailRes.Sanitized,
		"password": req.Password,
	}

	session, err := s.callAuth(ctx, "/auth/v1/token?grant_type=password", body)
	if err != nil {
		s.logger.WithError(err).Info("Login rejected by platform")
		return nil, errors.NewUnauthenticatedError("Invalid email or password")
	}
	return session, nil
}

// Register creates a new account on the platform. Upstream failures map
// to one fixed message to prevent account enumeration.
func (s *Service) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Session, error) {
	emailRes := validation.ValidateEmail(req.Email)
	passRes := validation.ValidatePassword(req.Password)
	nameRes := validation.ValidateName(req.Name)

	var fieldErrs []string
	fieldErrs = append(fieldErrs, emailRes.Errors...)
	fieldErrs = append(fieldErrs, passRes.Errors...)
	fieldErrs = append(fieldErrs, nameRes.Errors...)
	if len(fieldErrs) > 0 {
		return nil, errors.NewValidationError("Invalid registration request", fieldErrs)
	}

	body := map[string]interface{}{
		"email":    emailRes.Sanitized,
		"password": req.Password,
		"data": map[string]string{
			"name": nameRes.Sanitized,
		},
	}

	session, err := s.callAuth(ctx, "/auth/v1/signup", body)
	if err != nil {
		s.logger.WithError(err).Warn("Registration rejected by platform")
		return nil, errors.NewUpstreamError("Failed to create account. Please try again.", err)
	}
	return session, nil
}

// callAuth posts to a platform auth endpoint and decodes the session.
func (s *Service) callAuth(ctx context.Context, path string, body interface{}) (*domain.Session, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := s.supabaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var raw struct {
		AccessToken  string `json:"access_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int    `json:"expires_in"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			ID           string `json:"id"`
			Email        string `json:"email"`
			UserMetadata struct {
				Name string `json:"name"`
			} `json:"user_metadata"`
		} `json:"user"`
	}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse auth response: %w", err)
	}

	session := &domain.Session{
		AccessToken:  raw.AccessToken,
		TokenType:    raw.TokenType,
		ExpiresIn:    raw.ExpiresIn,
		RefreshToken: raw.RefreshToken,
	}
	if raw.User.ID != "" {
		session.User = &domain.Identity{
			ID:    raw.User.ID,
			Email: raw.User.Email,
			Name:  raw.User.UserMetadata.Name,
		}
	}
	return session, nil
}

// ValidateToken verifies a platform-issued JWT and extracts the acting
// identity from its claims.
func (s *Service) ValidateToken(_ context.Context, tokenString string) (*domain.Identity, error) {
	if !isJWTToken(tokenString) {
		return nil, errors.NewUnauthenticatedError("Unrecognized token format")
	}

	if s.jwtSecret == "" {
		s.logger.Error("JWT secret not configured")
		return nil, errors.NewUnauthenticatedError("Token validation not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		s.logger.WithError(err).Debug("Token validation failed")
		return nil, errors.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.NewUnauthenticatedError("Invalid token claims")
	}

	identity := &domain.Identity{
		ID:    getStringClaim(claims, "sub"),
		Email: getStringClaim(claims, "email"),
	}
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		identity.Name = getStringClaim(meta, "name")
	}

	if identity.ID == "" {
		return nil, errors.NewUnauthenticatedError("Invalid token: no user identifier")
	}
	return identity, nil
}

// isJWTToken reports whether the token has the three-segment JWT shape.
func isJWTToken(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

func getStringClaim(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
