package repositories

import (
	"context"

	"dukamart/internal/models"

	"github.com/google/uuid"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*models.Brand, error)
	List(ctx context.Context, limit, offset int) ([]*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type brandRepo struct {
	db DB
}

func NewBrandRepo(db DB) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, brand.ID, brand.Name, brand.Slug, brand.Description)
	return err
}

func (r *brandRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	brand := &models.Brand{}
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM brands
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.Description, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *brandRepo) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	brand := &models.Brand{}
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM brands
		WHERE slug = $1
	`
	err := r.db.QueryRow(ctx, query, slug).Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.Description, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *brandRepo) List(ctx context.Context, limit, offset int) ([]*models.Brand, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM brands
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		brand := &models.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.Description, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *models.Brand) error {
	query := `
		UPDATE brands
		SET name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, brand.Name, brand.Slug, brand.Description, brand.ID)
	return err
}

func (r *brandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM brands WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
