package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repuestos/internal/model"
	"repuestos/internal/repository"
	"repuestos/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPairResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type RegisteredUserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// --- Interface ---

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisteredUserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*TokenPairResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	issuer *token.Issuer
}

func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, issuer *token.Issuer) AuthService {
	return &authService{users: users, tokens: tokens, issuer: issuer}
}

// Register creates a user with a bcrypt-hashed password. Unknown or empty
// roles fall back to the base role.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*RegisteredUserResponse, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s: %w", req.Email, ErrAlreadyExists)
	}

	role := req.Role
	if role != model.RoleAdmin && role != model.RoleUser {
		role = model.RoleUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &RegisteredUserResponse{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}, nil
}

// Login verifies credentials and issues a fresh token pair. The error
// never distinguishes a wrong email from a wrong password.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, jti, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshValue, err := token.NewRefreshValue()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	rt := &model.RefreshToken{
		Token:     refreshValue,
		UserID:    user.ID,
		JwtID:     jti,
		ExpiresAt: time.Now().UTC().Add(s.issuer.RefreshTTL()),
	}
	if err := s.tokens.Create(ctx, rt); err != nil {
		return nil, err
	}

	return &TokenPairResponse{AccessToken: access, RefreshToken: refreshValue, ExpiresAt: expiresAt}, nil
}

// Refresh exchanges an expired access token plus its refresh token for a
// new access token. The refresh-token value is reused; only the stored
// jti moves forward so the pairing stays consistent across refreshes.
func (s *authService) Refresh(ctx context.Context, req RefreshRequest) (*TokenPairResponse, error) {
	claims, err := s.issuer.ParseExpired(req.AccessToken)
	if err != nil {
		if errors.Is(err, token.ErrNotExpired) {
			return nil, ErrTokenNotExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	stored, err := s.tokens.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	switch {
	case stored == nil:
		return nil, ErrInvalidToken
	case stored.JwtID != claims.ID:
		return nil, ErrInvalidToken
	case stored.IsRevoked:
		return nil, ErrInvalidToken
	case time.Now().UTC().After(stored.ExpiresAt):
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	access, jti, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	stored.JwtID = jti
	if err := s.tokens.Update(ctx, stored); err != nil {
		return nil, err
	}

	return &TokenPairResponse{AccessToken: access, RefreshToken: stored.Token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the presented refresh token. Revoking an unknown token
// is reported as not found so clients notice stale state.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	ok, err := s.tokens.Revoke(ctx, refreshToken)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("refresh token: %w", ErrNotFound)
	}
	return nil
}
