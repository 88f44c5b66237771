package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/dberrors"
)

// InstructorRepository handles database operations for instructor accounts
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// Create creates a new instructor and returns its ID
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) (int64, error) {
	query := `
		INSERT INTO instructors (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, instructor.Name, instructor.Email, instructor.Password).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_email_key") {
			return 0, apperrors.ErrInstructorAlreadyExists
		}
		return 0, fmt.Errorf("error creating instructor: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves an instructor by email
func (r *InstructorRepository) GetByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	query := `
		SELECT id, name, email, password, profile_picture, bio, created_at, updated_at
		FROM instructors
		WHERE email = $1
	`

	var instructor models.Instructor
	err := r.db.QueryRow(ctx, query, email).Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.Email,
		&instructor.Password,
		&instructor.ProfilePicture,
		&instructor.Bio,
		&instructor.CreatedAt,
		&instructor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting instructor by email: %w", err)
	}

	return &instructor, nil
}

// GetByID retrieves an instructor by ID
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := `
		SELECT id, name, email, password, profile_picture, bio, created_at, updated_at
		FROM instructors
		WHERE id = $1
	`

	var instructor models.Instructor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.Email,
		&instructor.Password,
		&instructor.ProfilePicture,
		&instructor.Bio,
		&instructor.CreatedAt,
		&instructor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error getting instructor: %w", err)
	}

	return &instructor, nil
}

// Exists reports whether an instructor with the given ID exists
func (r *InstructorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM instructors WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking instructor: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates an instructor's name, bio and optionally profile picture
func (r *InstructorRepository) UpdateProfile(ctx context.Context, id int64, name string, bio *string, profilePicture *string) error {
	query := `
		UPDATE instructors
		SET name = $1,
		    bio = $2,
		    profile_picture = COALESCE($3, profile_picture),
		    updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, name, bio, profilePicture, id)
	if err != nil {
		return fmt.Errorf("error updating instructor profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}

	return nil
}

// GetAllBasic lists every instructor's public fields
func (r *InstructorRepository) GetAllBasic(ctx context.Context) ([]*models.Instructor, error) {
	query := `SELECT id, name, profile_picture, bio FROM instructors ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	defer rows.Close()

	var instructors []*models.Instructor
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(&instructor.ID, &instructor.Name, &instructor.ProfilePicture, &instructor.Bio); err != nil {
			return nil, fmt.Errorf("error scanning instructor: %w", err)
		}
		instructors = append(instructors, &instructor)
	}

	return instructors, rows.Err()
}

// GetCourseIDs returns the IDs of courses owned by an instructor
func (r *InstructorRepository) GetCourseIDs(ctx context.Context, instructorID int64) ([]int64, error) {
	query := `SELECT id FROM courses WHERE instructor_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor courses: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning course id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
