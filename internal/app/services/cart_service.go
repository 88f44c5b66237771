package services

import (
	"context"
	"errors"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/app/repositories"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

// CartService defines the interface for shopping cart operations
type CartService interface {
	AddToCart(ctx context.Context, studentID, courseID int64) error
	GetCart(ctx context.Context, studentID int64) ([]*models.CartItem, float64, error)
	RemoveFromCart(ctx context.Context, studentID, courseID int64) error
	ClearCart(ctx context.Context, studentID int64) error
}

// cartServiceImpl implements the CartService interface
type cartServiceImpl struct {
	cartRepo       *repositories.CartRepository
	courseRepo     *repositories.CourseRepository
	enrollmentRepo *repositories.EnrollmentRepository
}

// NewCartService creates a new cart service instance
func NewCartService(
	cartRepo *repositories.CartRepository,
	courseRepo *repositories.CourseRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
) CartService {
	return &cartServiceImpl{
		cartRepo:       cartRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// AddToCart places a course in the student's cart. Courses the student
// already owns cannot be added.
func (s *cartServiceImpl) AddToCart(ctx context.Context, studentID, courseID int64) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}

	_, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err == nil {
		return apperrors.ErrAlreadyEnrolled
	}
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return err
	}

	_, err = s.cartRepo.Add(ctx, studentID, courseID)
	return err
}

// GetCart lists the student's cart with course summaries and the total price
func (s *cartServiceImpl) GetCart(ctx context.Context, studentID int64) ([]*models.CartItem, float64, error) {
	items, err := s.cartRepo.GetByUser(ctx, studentID)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return items, 0, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.CourseID)
	}

	courses, err := s.courseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]*models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	var total float64
	for _, item := range items {
		if c, ok := byID[item.CourseID]; ok {
			item.Course = c
			total += c.Price
		}
	}

	return items, total, nil
}

// RemoveFromCart takes a course out of the student's cart
func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, studentID, courseID int64) error {
	return s.cartRepo.Remove(ctx, studentID, courseID)
}

// ClearCart empties the student's cart. An already empty cart is not an
// error.
func (s *cartServiceImpl) ClearCart(ctx context.Context, studentID int64) error {
	return s.cartRepo.Clear(ctx, studentID)
}
