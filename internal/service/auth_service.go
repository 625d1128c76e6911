package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"chargelog/internal/models"
	"chargelog/internal/password"
	"chargelog/internal/repository"
)

var (
	// ErrEmailInUse is returned when attempting to register duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrSessionRevoked is returned for tokens that were logged out.
	ErrSessionRevoked = errors.New("auth: session revoked")
)

// UserRepository defines storage contract used by the service.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore tracks live token IDs for revocation.
type SessionStore interface {
	Save(ctx context.Context, userID int64, tokenID string) error
	Exists(ctx context.Context, userID int64, tokenID string) (bool, error)
	Delete(ctx context.Context, userID int64, tokenID string) error
}

// AuthService contains registration/login/logout logic.
type AuthService struct {
	repo      UserRepository
	hasher    password.Hasher
	tokenizer *TokenService
	sessions  SessionStore
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokenizer *TokenService, sessions SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokenizer: tokenizer,
		sessions:  sessions,
		logger:    logger,
	}
}

// Signup registers a new user.
func (s *AuthService) Signup(ctx context.Context, email, plainPassword string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("auth: email required")
	}
	if plainPassword == "" {
		return nil, errors.New("auth: password required")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Login authenticates a user, produces a JWT and registers its session.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, tokenID, err := s.tokenizer.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, user.ID, tokenID); err != nil {
			return "", nil, err
		}
	}

	return token, user, nil
}

// ValidateToken verifies a bearer token and checks that its session has not
// been revoked.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.tokenizer.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	if s.sessions != nil && claims.ID != "" {
		live, err := s.sessions.Exists(ctx, claims.UserID, claims.ID)
		if err != nil {
			return nil, err
		}
		if !live {
			return nil, ErrSessionRevoked
		}
	}

	return claims, nil
}

// Logout revokes the token's session.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if s.sessions == nil || claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.UserID, claims.ID); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.Int64("user_id", claims.UserID))
	return nil
}
