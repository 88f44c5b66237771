package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/cache"
	"github.com/kaan/eduflow/internal/pkg/logger"
)

// ReviewService defines the interface for course review operations
type ReviewService interface {
	CreateReview(ctx context.Context, studentID, courseID int64, stars int, comment string) (*models.Review, error)
	GetCourseReviews(ctx context.Context, courseID int64) ([]*models.Review, float64, int, error)
}

// reviewServiceImpl implements the ReviewService interface
type reviewServiceImpl struct {
	reviewRepo     *repositories.ReviewRepository
	enrollmentRepo *repositories.EnrollmentRepository
	cache          *cache.Cache
}

// NewReviewService creates a new review service instance
func NewReviewService(
	reviewRepo *repositories.ReviewRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	cacheClient *cache.Cache,
) ReviewService {
	return &reviewServiceImpl{
		reviewRepo:     reviewRepo,
		enrollmentRepo: enrollmentRepo,
		cache:          cacheClient,
	}
}

// CreateReview submits a review. Only enrolled students can review, and only
// once per course.
func (s *reviewServiceImpl) CreateReview(ctx context.Context, studentID, courseID int64, stars int, comment string) (*models.Review, error) {
	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 5", apperrors.ErrValidationFailed)
	}

	// Enrollment gate: reviewing requires a purchase, expired or not
	if _, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	review := &models.Review{
		CourseID: courseID,
		UserID:   studentID,
		Stars:    stars,
		Comment:  strings.TrimSpace(comment),
	}

	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	review.ID = id

	// New ratings change the top courses aggregate
	if err := s.cache.Delete(topCoursesCacheKey); err != nil {
		logger.Warn().Err(err).Msg("Top courses cache invalidation failed")
	}

	return review, nil
}

// GetCourseReviews lists a course's reviews with the aggregate rating
func (s *reviewServiceImpl) GetCourseReviews(ctx context.Context, courseID int64) ([]*models.Review, float64, int, error) {
	reviews, err := s.reviewRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, 0, 0, err
	}

	avg, count, err := s.reviewRepo.GetCourseRating(ctx, courseID)
	if err != nil {
		return nil, 0, 0, err
	}

	return reviews, avg, count, nil
}
