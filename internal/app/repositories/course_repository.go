package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course and returns its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query := `
		INSERT INTO courses (
			title, description, price, category, requirements, learning_outcomes,
			thumbnail, video_preview, preview_video_size,
			instructor_id, level, validity_type, validity_duration, visibility
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.Category,
		course.Requirements,
		course.LearningOutcomes,
		course.Thumbnail,
		course.VideoPreview,
		course.PreviewVideoSize,
		course.InstructorID,
		course.Level,
		course.ValidityPeriod.Kind,
		course.ValidityPeriod.Duration,
		course.Visibility,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// Update updates a course's scalar fields. Media columns are only
// overwritten when a new value is provided.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1,
		    description = $2,
		    price = $3,
		    category = $4,
		    requirements = $5,
		    learning_outcomes = $6,
		    thumbnail = COALESCE($7, thumbnail),
		    video_preview = COALESCE($8, video_preview),
		    preview_video_size = COALESCE($9, preview_video_size),
		    level = $10,
		    validity_type = $11,
		    validity_duration = $12,
		    visibility = $13,
		    updated_at = NOW()
		WHERE id = $14
	`

	result, err := r.db.Exec(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.Category,
		course.Requirements,
		course.LearningOutcomes,
		course.Thumbnail,
		course.VideoPreview,
		course.PreviewVideoSize,
		course.Level,
		course.ValidityPeriod.Kind,
		course.ValidityPeriod.Duration,
		course.Visibility,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// SetVisibility updates a course's listing visibility
func (r *CourseRepository) SetVisibility(ctx context.Context, id int64, visibility models.Visibility) error {
	query := `UPDATE courses SET visibility = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(ctx, query, visibility, id)
	if err != nil {
		return fmt.Errorf("error updating course visibility: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// GetByID retrieves a course with its instructor's name
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.price, c.category,
		       c.requirements, c.learning_outcomes,
		       c.thumbnail, c.video_preview, c.preview_video_size,
		       c.instructor_id, i.name, c.level,
		       c.validity_type, c.validity_duration, c.visibility,
		       c.created_at, c.updated_at
		FROM courses c
		JOIN instructors i ON i.id = c.instructor_id
		WHERE c.id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.Category,
		&course.Requirements,
		&course.LearningOutcomes,
		&course.Thumbnail,
		&course.VideoPreview,
		&course.PreviewVideoSize,
		&course.InstructorID,
		&course.InstructorName,
		&course.Level,
		&course.ValidityPeriod.Kind,
		&course.ValidityPeriod.Duration,
		&course.Visibility,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}

	return &course, nil
}

// GetAllVisible lists public courses, optionally filtered by category
func (r *CourseRepository) GetAllVisible(ctx context.Context, category string) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.price, c.category,
		       c.thumbnail, c.instructor_id, i.name, c.level,
		       c.validity_type, c.validity_duration, c.created_at
		FROM courses c
		JOIN instructors i ON i.id = c.instructor_id
		WHERE c.visibility = 'public'
		  AND ($1 = '' OR c.category = $1)
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	return scanCourseSummaries(rows)
}

// GetByInstructor lists all courses owned by an instructor, including private ones
func (r *CourseRepository) GetByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.price, c.category,
		       c.thumbnail, c.instructor_id, i.name, c.level,
		       c.validity_type, c.validity_duration, c.created_at
		FROM courses c
		JOIN instructors i ON i.id = c.instructor_id
		WHERE c.instructor_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor courses: %w", err)
	}
	defer rows.Close()

	return scanCourseSummaries(rows)
}

// GetByIDs retrieves course summaries for a set of IDs
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT c.id, c.title, c.description, c.price, c.category,
		       c.thumbnail, c.instructor_id, i.name, c.level,
		       c.validity_type, c.validity_duration, c.created_at
		FROM courses c
		JOIN instructors i ON i.id = c.instructor_id
		WHERE c.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error getting courses by ids: %w", err)
	}
	defer rows.Close()

	return scanCourseSummaries(rows)
}

// Delete removes a course. Chapters, lessons and media cascade.
func (r *CourseRepository) Delete(ctx context.Context, id int64, instructorID int64) error {
	query := `DELETE FROM courses WHERE id = $1 AND instructor_id = $2`

	result, err := r.db.Exec(ctx, query, id, instructorID)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

func scanCourseSummaries(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.Price,
			&course.Category,
			&course.Thumbnail,
			&course.InstructorID,
			&course.InstructorName,
			&course.Level,
			&course.ValidityPeriod.Kind,
			&course.ValidityPeriod.Duration,
			&course.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}
