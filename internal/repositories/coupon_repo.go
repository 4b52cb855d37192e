package repositories

import (
	"context"

	"dukamart/internal/models"

	"github.com/google/uuid"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	List(ctx context.Context, limit, offset int) ([]*models.Coupon, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type couponRepo struct {
	db DB
}

func NewCouponRepo(db DB) CouponRepository {
	return &couponRepo{db: db}
}

func (r *couponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, type, value, min_subtotal, starts_at, ends_at, usage_limit, used_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, coupon.ID, coupon.Code, coupon.Type, coupon.Value, coupon.MinSubtotal,
		coupon.StartsAt, coupon.EndsAt, coupon.UsageLimit, coupon.UsedCount, coupon.IsActive)
	return err
}

func (r *couponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	coupon := &models.Coupon{}
	query := `
		SELECT id, code, type, value, min_subtotal, starts_at, ends_at, usage_limit, used_count, is_active, created_at, updated_at
		FROM coupons
		WHERE code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value,
		&coupon.MinSubtotal, &coupon.StartsAt, &coupon.EndsAt, &coupon.UsageLimit, &coupon.UsedCount,
		&coupon.IsActive, &coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepo) List(ctx context.Context, limit, offset int) ([]*models.Coupon, error) {
	query := `
		SELECT id, code, type, value, min_subtotal, starts_at, ends_at, usage_limit, used_count, is_active, created_at, updated_at
		FROM coupons
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []*models.Coupon
	for rows.Next() {
		coupon := &models.Coupon{}
		if err := rows.Scan(&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value,
			&coupon.MinSubtotal, &coupon.StartsAt, &coupon.EndsAt, &coupon.UsageLimit, &coupon.UsedCount,
			&coupon.IsActive, &coupon.CreatedAt, &coupon.UpdatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, coupon)
	}
	return coupons, nil
}

func (r *couponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE coupons SET used_count = used_count + 1, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *couponRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE coupons SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
