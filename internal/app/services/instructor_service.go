package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/auth"
	"github.com/kaan/eduflow/internal/pkg/filestorage"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// InstructorService defines the interface for instructor account operations
type InstructorService interface {
	Register(ctx context.Context, name, email, password string) (*models.Instructor, *models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Instructor, *models.Session, error)
	GetProfile(ctx context.Context, instructorID int64) (*models.Instructor, error)
	UpdateProfile(ctx context.Context, instructorID int64, name string, bio *string, picture *multipart.FileHeader) error
	ListInstructors(ctx context.Context) ([]*models.Instructor, error)
}

// instructorServiceImpl implements the InstructorService interface
type instructorServiceImpl struct {
	instructorRepo *repositories.InstructorRepository
	sessionRepo    *repositories.SessionRepository
	storage        filestorage.FileStorage
	sessionTTL     time.Duration
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(
	instructorRepo *repositories.InstructorRepository,
	sessionRepo *repositories.SessionRepository,
	storage filestorage.FileStorage,
	sessionTTL time.Duration,
) InstructorService {
	return &instructorServiceImpl{
		instructorRepo: instructorRepo,
		sessionRepo:    sessionRepo,
		storage:        storage,
		sessionTTL:     sessionTTL,
	}
}

// Register creates an instructor account and issues a session
func (s *instructorServiceImpl) Register(ctx context.Context, name, email, password string) (*models.Instructor, *models.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	instructor := &models.Instructor{Name: name, Email: email, Password: hashed}
	id, err := s.instructorRepo.Create(ctx, instructor)
	if err != nil {
		return nil, nil, err
	}
	instructor.ID = id

	session, err := s.issueSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("instructorID", id).Msg("Instructor registered")
	return instructor, session, nil
}

// Login verifies credentials and issues a session
func (s *instructorServiceImpl) Login(ctx context.Context, email, password string) (*models.Instructor, *models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	instructor, err := s.instructorRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if instructor == nil || !auth.CheckPassword(password, instructor.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, instructor.ID)
	if err != nil {
		return nil, nil, err
	}

	return instructor, session, nil
}

// GetProfile retrieves an instructor with the IDs of their courses
func (s *instructorServiceImpl) GetProfile(ctx context.Context, instructorID int64) (*models.Instructor, error) {
	instructor, err := s.instructorRepo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	courseIDs, err := s.instructorRepo.GetCourseIDs(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	instructor.CourseIDs = courseIDs

	return instructor, nil
}

// UpdateProfile updates an instructor's name, bio and optionally replaces the
// profile picture
func (s *instructorServiceImpl) UpdateProfile(ctx context.Context, instructorID int64, name string, bio *string, picture *multipart.FileHeader) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	var picturePath *string
	if picture != nil {
		stored, err := s.storage.SaveFileWithPath(picture, "profiles")
		if err != nil {
			return fmt.Errorf("error saving profile picture: %w", err)
		}
		picturePath = &stored.Path
	}

	return s.instructorRepo.UpdateProfile(ctx, instructorID, name, bio, picturePath)
}

// ListInstructors returns every instructor's public fields
func (s *instructorServiceImpl) ListInstructors(ctx context.Context) ([]*models.Instructor, error) {
	return s.instructorRepo.GetAllBasic(ctx)
}

func (s *instructorServiceImpl) issueSession(ctx context.Context, instructorID int64) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		SubjectID: instructorID,
		Scope:     models.ScopeInstructor,
		Token:     auth.NewSessionToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
