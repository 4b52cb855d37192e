package repositories

import (
	"context"

	"dukamart/internal/models"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error)
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, int, error)
	ExistsForCustomer(ctx context.Context, productID, customerID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepo struct {
	db DB
}

func NewReviewRepo(db DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, customer_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, review.ID, review.ProductID, review.CustomerID, review.Rating, review.Comment)
	return err
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error) {
	query := `
		SELECT id, product_id, customer_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.ProductID, &review.CustomerID, &review.Rating,
			&review.Comment, &review.CreatedAt, &review.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (r *reviewRepo) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	var avg float64
	var count int
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE product_id = $1`
	if err := r.db.QueryRow(ctx, query, productID).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

func (r *reviewRepo) ExistsForCustomer(ctx context.Context, productID, customerID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id = $1 AND customer_id = $2)`
	if err := r.db.QueryRow(ctx, query, productID, customerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
