package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

// notificationWindow is how far back student notification feeds reach.
const notificationWindow = 48 * time.Hour

// NotificationService defines the interface for announcement operations
type NotificationService interface {
	CreateNotification(ctx context.Context, instructorID int64, title, message string) (*models.Notification, error)
	GetStudentFeed(ctx context.Context, studentID int64) ([]*models.Notification, error)
	GetInstructorNotifications(ctx context.Context, instructorID int64) ([]*models.Notification, error)
	GetNotification(ctx context.Context, instructorID, notificationID int64) (*models.Notification, error)
	DeleteNotification(ctx context.Context, instructorID, notificationID int64) error
}

// notificationServiceImpl implements the NotificationService interface
type notificationServiceImpl struct {
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo *repositories.NotificationRepository) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

// CreateNotification publishes an announcement to an instructor's students
func (s *notificationServiceImpl) CreateNotification(ctx context.Context, instructorID int64, title, message string) (*models.Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return nil, fmt.Errorf("%w: title and message are required", apperrors.ErrValidationFailed)
	}

	n := &models.Notification{
		InstructorID: instructorID,
		Title:        title,
		Message:      message,
	}

	id, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = id
	n.CreatedAt = time.Now()

	return n, nil
}

// GetStudentFeed lists recent announcements from the instructors of the
// student's enrolled courses
func (s *notificationServiceImpl) GetStudentFeed(ctx context.Context, studentID int64) ([]*models.Notification, error) {
	since := time.Now().Add(-notificationWindow)
	return s.notificationRepo.GetRecentForStudent(ctx, studentID, since)
}

// GetInstructorNotifications lists an instructor's own announcements
func (s *notificationServiceImpl) GetInstructorNotifications(ctx context.Context, instructorID int64) ([]*models.Notification, error) {
	return s.notificationRepo.GetByInstructor(ctx, instructorID)
}

// GetNotification retrieves a single announcement owned by the instructor
func (s *notificationServiceImpl) GetNotification(ctx context.Context, instructorID, notificationID int64) (*models.Notification, error) {
	return s.notificationRepo.GetByID(ctx, notificationID, instructorID)
}

// DeleteNotification removes an announcement owned by the instructor
func (s *notificationServiceImpl) DeleteNotification(ctx context.Context, instructorID, notificationID int64) error {
	return s.notificationRepo.Delete(ctx, notificationID, instructorID)
}
