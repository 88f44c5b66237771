package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/dberrors"
)

// TopCourse is a course ID with its review aggregate.
type TopCourse struct {
	CourseID    int64
	AvgStars    float64
	ReviewCount int
}

// ReviewRepository handles database operations for course reviews
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review. A student can review a course only once.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (int64, error) {
	query := `
		INSERT INTO reviews (course_id, user_id, stars, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, review.CourseID, review.UserID, review.Stars, review.Comment).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "reviews_course_user_key") {
			return 0, apperrors.ErrAlreadyReviewed
		}
		return 0, fmt.Errorf("error creating review: %w", err)
	}

	return id, nil
}

// GetByCourse lists a course's reviews with reviewer names, newest first
func (r *ReviewRepository) GetByCourse(ctx context.Context, courseID int64) ([]*models.Review, error) {
	query := `
		SELECT rv.id, rv.course_id, rv.user_id, rv.stars, rv.comment, rv.created_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.course_id = $1
		ORDER BY rv.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var rv models.Review
		err := rows.Scan(&rv.ID, &rv.CourseID, &rv.UserID, &rv.Stars, &rv.Comment, &rv.CreatedAt, &rv.UserName)
		if err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, &rv)
	}

	return reviews, rows.Err()
}

// GetCourseRating returns a course's average stars and review count
func (r *ReviewRepository) GetCourseRating(ctx context.Context, courseID int64) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(stars), 0), COUNT(id)
		FROM reviews
		WHERE course_id = $1
	`

	var avg float64
	var count int
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("error aggregating course rating: %w", err)
	}

	return avg, count, nil
}

// GetTopCourses returns the public courses with the highest average rating
func (r *ReviewRepository) GetTopCourses(ctx context.Context, limit int) ([]TopCourse, error) {
	query := `
		SELECT rv.course_id, AVG(rv.stars) AS avg_stars, COUNT(rv.id) AS review_count
		FROM reviews rv
		JOIN courses c ON c.id = rv.course_id
		WHERE c.visibility = 'public'
		GROUP BY rv.course_id
		ORDER BY avg_stars DESC, review_count DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing top courses: %w", err)
	}
	defer rows.Close()

	var top []TopCourse
	for rows.Next() {
		var tc TopCourse
		if err := rows.Scan(&tc.CourseID, &tc.AvgStars, &tc.ReviewCount); err != nil {
			return nil, fmt.Errorf("error scanning top course row: %w", err)
		}
		top = append(top, tc)
	}

	return top, rows.Err()
}
