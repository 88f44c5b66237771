package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for enrollments and
// lesson completion tracking
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment and returns its ID. A second enrollment
// of the same student in the same course is a conflict.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	query := `
		INSERT INTO enrollments (student_id, course_id, purchased_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.PurchasedAt,
		enrollment.ExpiresAt,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key") {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}

	return id, nil
}

// GetByStudentAndCourse retrieves a student's enrollment in a course
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, purchased_at, expires_at,
		       completed_at, recent_access, certificate, is_expired
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2
	`

	var e models.Enrollment
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(
		&e.ID,
		&e.StudentID,
		&e.CourseID,
		&e.PurchasedAt,
		&e.ExpiresAt,
		&e.CompletedAt,
		&e.RecentAccess,
		&e.Certificate,
		&e.IsExpired,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}

	return &e, nil
}

// GetByStudent lists all of a student's enrollments, most recent purchase first
func (r *EnrollmentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, purchased_at, expires_at,
		       completed_at, recent_access, certificate, is_expired
		FROM enrollments
		WHERE student_id = $1
		ORDER BY purchased_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		err := rows.Scan(
			&e.ID,
			&e.StudentID,
			&e.CourseID,
			&e.PurchasedAt,
			&e.ExpiresAt,
			&e.CompletedAt,
			&e.RecentAccess,
			&e.Certificate,
			&e.IsExpired,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, &e)
	}

	return enrollments, rows.Err()
}

// GetByCourses lists every enrollment of the given courses with the
// student's name attached, most recent purchase first
func (r *EnrollmentRepository) GetByCourses(ctx context.Context, courseIDs []int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.purchased_at, e.expires_at,
		       e.completed_at, e.recent_access, e.certificate, e.is_expired,
		       u.name
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.course_id = ANY($1)
		ORDER BY e.purchased_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing course enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var studentName string
		err := rows.Scan(
			&e.ID,
			&e.StudentID,
			&e.CourseID,
			&e.PurchasedAt,
			&e.ExpiresAt,
			&e.CompletedAt,
			&e.RecentAccess,
			&e.Certificate,
			&e.IsExpired,
			&studentName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		e.Student = &models.User{ID: e.StudentID, Name: studentName}
		enrollments = append(enrollments, &e)
	}

	return enrollments, rows.Err()
}

// MarkExpired flags enrollments as expired once their expiry has passed
func (r *EnrollmentRepository) MarkExpired(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE enrollments SET is_expired = TRUE WHERE id = ANY($1)`
	if _, err := r.db.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("error marking enrollments expired: %w", err)
	}
	return nil
}

// TouchRecentAccess records that a student opened a course
func (r *EnrollmentRepository) TouchRecentAccess(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE enrollments SET recent_access = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, at, id); err != nil {
		return fmt.Errorf("error touching enrollment: %w", err)
	}
	return nil
}

// SetCompleted records course completion and the issued certificate path
func (r *EnrollmentRepository) SetCompleted(ctx context.Context, id int64, at time.Time, certificate string) error {
	query := `UPDATE enrollments SET completed_at = $1, certificate = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, at, certificate, id)
	if err != nil {
		return fmt.Errorf("error completing enrollment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// AddCompletedLesson records a completed lesson. Completing the same lesson
// twice is a no-op.
func (r *EnrollmentRepository) AddCompletedLesson(ctx context.Context, enrollmentID, lessonID int64, at time.Time) error {
	query := `
		INSERT INTO enrollment_lessons (enrollment_id, lesson_id, completed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (enrollment_id, lesson_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, enrollmentID, lessonID, at); err != nil {
		return fmt.Errorf("error recording completed lesson: %w", err)
	}
	return nil
}

// RemoveCompletedLesson drops a lesson from the completed set. Removing a
// lesson that was never completed is a no-op.
func (r *EnrollmentRepository) RemoveCompletedLesson(ctx context.Context, enrollmentID, lessonID int64) error {
	query := `DELETE FROM enrollment_lessons WHERE enrollment_id = $1 AND lesson_id = $2`

	if _, err := r.db.Exec(ctx, query, enrollmentID, lessonID); err != nil {
		return fmt.Errorf("error removing completed lesson: %w", err)
	}
	return nil
}

// GetCompletedLessons lists the lessons a student has completed for an enrollment
func (r *EnrollmentRepository) GetCompletedLessons(ctx context.Context, enrollmentID int64) ([]models.CompletedLesson, error) {
	query := `
		SELECT lesson_id, completed_at
		FROM enrollment_lessons
		WHERE enrollment_id = $1
		ORDER BY completed_at ASC
	`

	rows, err := r.db.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing completed lessons: %w", err)
	}
	defer rows.Close()

	var completed []models.CompletedLesson
	for rows.Next() {
		var cl models.CompletedLesson
		if err := rows.Scan(&cl.LessonID, &cl.CompletedAt); err != nil {
			return nil, fmt.Errorf("error scanning completed lesson row: %w", err)
		}
		completed = append(completed, cl)
	}

	return completed, rows.Err()
}

// CountLessons counts the lessons currently in a course
func (r *EnrollmentRepository) CountLessons(ctx context.Context, courseID int64) (int, error) {
	query := `
		SELECT COUNT(l.id)
		FROM lessons l
		JOIN chapters c ON c.id = l.chapter_id
		WHERE c.course_id = $1
	`

	var count int
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting lessons: %w", err)
	}
	return count, nil
}

// CountByCourse counts the students enrolled in a course
func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	query := `SELECT COUNT(id) FROM enrollments WHERE course_id = $1`
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}
