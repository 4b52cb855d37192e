package repositories

import (
	"context"
	"fmt"

	"dukamart/internal/models"

	"github.com/google/uuid"
)

type InventoryRepository interface {
	Upsert(ctx context.Context, inventory *models.Inventory) error
	GetByVariant(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error)
	Decrement(ctx context.Context, variantID uuid.UUID, quantity int) error
	ListLowStock(ctx context.Context, limit int) ([]*models.Inventory, error)
}

type inventoryRepo struct {
	db DB
}

func NewInventoryRepo(db DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Upsert(ctx context.Context, inventory *models.Inventory) error {
	query := `
		INSERT INTO inventory (id, variant_id, quantity, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (variant_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, low_stock_threshold = EXCLUDED.low_stock_threshold, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, inventory.ID, inventory.VariantID, inventory.Quantity, inventory.LowStockThreshold)
	return err
}

func (r *inventoryRepo) GetByVariant(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error) {
	inventory := &models.Inventory{}
	query := `
		SELECT id, variant_id, quantity, low_stock_threshold, created_at, updated_at
		FROM inventory
		WHERE variant_id = $1
	`
	err := r.db.QueryRow(ctx, query, variantID).Scan(&inventory.ID, &inventory.VariantID, &inventory.Quantity,
		&inventory.LowStockThreshold, &inventory.CreatedAt, &inventory.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inventory, nil
}

// Decrement reduces stock only when enough remains, keeping the operation
// safe under concurrent checkouts. A variant with no inventory record is not
// stock-tracked and decrements to nothing.
func (r *inventoryRepo) Decrement(ctx context.Context, variantID uuid.UUID, quantity int) error {
	query := `
		UPDATE inventory
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE variant_id = $2 AND quantity >= $1
	`
	tag, err := r.db.Exec(ctx, query, quantity, variantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var tracked bool
		existsQuery := `SELECT EXISTS (SELECT 1 FROM inventory WHERE variant_id = $1)`
		if err := r.db.QueryRow(ctx, existsQuery, variantID).Scan(&tracked); err != nil {
			return err
		}
		if tracked {
			return fmt.Errorf("insufficient stock for variant %s", variantID.String())
		}
	}
	return nil
}

func (r *inventoryRepo) ListLowStock(ctx context.Context, limit int) ([]*models.Inventory, error) {
	query := `
		SELECT id, variant_id, quantity, low_stock_threshold, created_at, updated_at
		FROM inventory
		WHERE quantity <= low_stock_threshold
		ORDER BY quantity ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []*models.Inventory
	for rows.Next() {
		inventory := &models.Inventory{}
		if err := rows.Scan(&inventory.ID, &inventory.VariantID, &inventory.Quantity,
			&inventory.LowStockThreshold, &inventory.CreatedAt, &inventory.UpdatedAt); err != nil {
			return nil, err
		}
		inventories = append(inventories, inventory)
	}
	return inventories, nil
}
