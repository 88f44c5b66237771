package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/dberrors"
)

// FAQRepository handles database operations for help page entries
type FAQRepository struct {
	db *pgxpool.Pool
}

// NewFAQRepository creates a new FAQRepository
func NewFAQRepository(db *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{db: db}
}

// GetActive lists active FAQ entries in display order
func (r *FAQRepository) GetActive(ctx context.Context) ([]*models.FAQ, error) {
	query := `
		SELECT id, question, answer, is_active, position, created_at
		FROM faqs
		WHERE is_active
		ORDER BY position ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing faqs: %w", err)
	}
	defer rows.Close()

	var faqs []*models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.IsActive, &f.Order, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning faq row: %w", err)
		}
		faqs = append(faqs, &f)
	}

	return faqs, rows.Err()
}

// Create inserts a FAQ entry and returns its ID. A repeated question maps
// to ErrFAQAlreadyExists.
func (r *FAQRepository) Create(ctx context.Context, f *models.FAQ) (int64, error) {
	query := `
		INSERT INTO faqs (question, answer, is_active, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, f.Question, f.Answer, f.IsActive, f.Order).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faqs_question_key") {
			return 0, apperrors.ErrFAQAlreadyExists
		}
		return 0, fmt.Errorf("error creating faq: %w", err)
	}

	return id, nil
}

// Delete removes a FAQ entry
func (r *FAQRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM faqs WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting faq: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFAQNotFound
	}

	return nil
}
