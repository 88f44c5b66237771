package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaan/eduflow/internal/app/models"
	"github.com/kaan/eduflow/internal/pkg/apperrors"
	"github.com/kaan/eduflow/internal/pkg/dberrors"
)

// CartRepository handles database operations for shopping carts
type CartRepository struct {
	db *pgxpool.Pool
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// Add places a course in a student's cart. A course already in the cart is
// a conflict.
func (r *CartRepository) Add(ctx context.Context, userID, courseID int64) (int64, error) {
	query := `
		INSERT INTO cart_items (user_id, course_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "cart_items_user_course_key") {
			return 0, apperrors.ErrCourseAlreadyInCart
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error adding to cart: %w", err)
	}

	return id, nil
}

// GetByUser lists a student's cart items, most recently added first
func (r *CartRepository) GetByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	query := `
		SELECT id, user_id, course_id, added_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing cart: %w", err)
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.CourseID, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("error scanning cart row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Remove takes a course out of a student's cart
func (r *CartRepository) Remove(ctx context.Context, userID, courseID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND course_id = $2`

	result, err := r.db.Exec(ctx, query, userID, courseID)
	if err != nil {
		return fmt.Errorf("error removing from cart: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCartNotFound
	}

	return nil
}

// Clear empties a student's cart
func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("error clearing cart: %w", err)
	}
	return nil
}
