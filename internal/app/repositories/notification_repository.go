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
)

// NotificationRepository handles database operations for instructor announcements
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification and returns its ID
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	query := `
		INSERT INTO notifications (instructor_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, n.InstructorID, n.Title, n.Message).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}

	return id, nil
}

// GetRecentForStudent lists notifications newer than the cutoff from the
// instructors of courses the student is enrolled in
func (r *NotificationRepository) GetRecentForStudent(ctx context.Context, studentID int64, since time.Time) ([]*models.Notification, error) {
	query := `
		SELECT DISTINCT n.id, n.instructor_id, n.title, n.message, n.created_at
		FROM notifications n
		JOIN courses c ON c.instructor_id = n.instructor_id
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = $1 AND n.created_at >= $2
		ORDER BY n.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID, since)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.InstructorID, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// GetByInstructor lists an instructor's own notifications, newest first
func (r *NotificationRepository) GetByInstructor(ctx context.Context, instructorID int64) ([]*models.Notification, error) {
	query := `
		SELECT id, instructor_id, title, message, created_at
		FROM notifications
		WHERE instructor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.InstructorID, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// GetByID retrieves a single notification owned by the instructor
func (r *NotificationRepository) GetByID(ctx context.Context, id, instructorID int64) (*models.Notification, error) {
	query := `
		SELECT id, instructor_id, title, message, created_at
		FROM notifications
		WHERE id = $1 AND instructor_id = $2
	`

	var n models.Notification
	err := r.db.QueryRow(ctx, query, id, instructorID).Scan(&n.ID, &n.InstructorID, &n.Title, &n.Message, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error getting notification: %w", err)
	}

	return &n, nil
}

// Delete removes a notification owned by the instructor
func (r *NotificationRepository) Delete(ctx context.Context, id, instructorID int64) error {
	query := `DELETE FROM notifications WHERE id = $1 AND instructor_id = $2`

	result, err := r.db.Exec(ctx, query, id, instructorID)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}
