package repositories

import (
	"context"

	"dukamart/internal/models"

	"github.com/google/uuid"
)

type VariantRepository interface {
	Create(ctx context.Context, variant *models.ProductVariant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
	GetBySKU(ctx context.Context, sku string) (*models.ProductVariant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type variantRepo struct {
	db DB
}

func NewVariantRepo(db DB) VariantRepository {
	return &variantRepo{db: db}
}

func (r *variantRepo) Create(ctx context.Context, variant *models.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, sku, name, price_adjustment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, variant.ID, variant.ProductID, variant.SKU, variant.Name, variant.PriceAdjustment)
	return err
}

func (r *variantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	variant := &models.ProductVariant{}
	query := `
		SELECT id, product_id, sku, name, price_adjustment, created_at, updated_at
		FROM product_variants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&variant.ID, &variant.ProductID, &variant.SKU, &variant.Name,
		&variant.PriceAdjustment, &variant.CreatedAt, &variant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *variantRepo) GetBySKU(ctx context.Context, sku string) (*models.ProductVariant, error) {
	variant := &models.ProductVariant{}
	query := `
		SELECT id, product_id, sku, name, price_adjustment, created_at, updated_at
		FROM product_variants
		WHERE sku = $1
	`
	err := r.db.QueryRow(ctx, query, sku).Scan(&variant.ID, &variant.ProductID, &variant.SKU, &variant.Name,
		&variant.PriceAdjustment, &variant.CreatedAt, &variant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *variantRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error) {
	query := `
		SELECT id, product_id, sku, name, price_adjustment, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*models.ProductVariant
	for rows.Next() {
		variant := &models.ProductVariant{}
		if err := rows.Scan(&variant.ID, &variant.ProductID, &variant.SKU, &variant.Name,
			&variant.PriceAdjustment, &variant.CreatedAt, &variant.UpdatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

func (r *variantRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM product_variants WHERE product_id = $1`
	if err := r.db.QueryRow(ctx, query, productID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *variantRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE product_variants SET name = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, name, id)
	return err
}

func (r *variantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM product_variants WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
