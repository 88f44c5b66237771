package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/auth"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// AuthService defines the interface for student authentication operations
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, *models.Session, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string, scope models.SessionScope) (*models.Session, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, email string) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo    *repositories.UserRepository
	sessionRepo *repositories.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	sessionRepo *repositories.SessionRepository,
	sessionTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// Register creates a student account and issues a session
func (s *authServiceImpl) Register(ctx context.Context, name, email, password string) (*models.User, *models.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Name: name, Email: email, Password: hashed}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	user.ID = id

	session, err := s.issueSession(ctx, id, models.ScopeStudent)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userID", id).Msg("Student registered")
	return user, session, nil
}

// Login verifies credentials and issues a session
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, user.ID, models.ScopeStudent)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout revokes the session token. Revoking an unknown token succeeds.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// ResolveSession looks up a bearer token and checks scope and expiry.
// An expired session is removed before the error is returned.
func (s *authServiceImpl) ResolveSession(ctx context.Context, token string, scope models.SessionScope) (*models.Session, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.sessionRepo.Delete(ctx, token); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove expired session")
		}
		return nil, apperrors.ErrSessionExpired
	}

	if session.Scope != scope {
		return nil, apperrors.ErrPermissionDenied
	}

	return session, nil
}

// GetProfile retrieves a student's account information
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates a student's name and email
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	taken, err := s.userRepo.EmailExistsForOther(ctx, email, userID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrEmailAlreadyExists
	}

	return s.userRepo.UpdateProfile(ctx, userID, name, email)
}

func (s *authServiceImpl) issueSession(ctx context.Context, subjectID int64, scope models.SessionScope) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		SubjectID: subjectID,
		Scope:     scope,
		Token:     auth.NewSessionToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
