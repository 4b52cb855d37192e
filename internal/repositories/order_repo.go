package repositories

import (
	"context"

	"dukamart/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetPaymentRef(ctx context.Context, id uuid.UUID, paymentRef string) error
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

// Create inserts the order and all of its items in one transaction.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, customer_id, status, subtotal, discount, total, coupon_code, shipping_address, payment_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.CustomerID, order.Status, order.Subtotal,
		order.Discount, order.Total, order.CouponCode, order.ShippingAddress, order.PaymentRef); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, variant_id, sku, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery, item.ID, item.OrderID, item.VariantID, item.SKU,
			item.Name, item.UnitPrice, item.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, customer_id, status, subtotal, discount, total, coupon_code, shipping_address, payment_ref, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.CustomerID, &order.Status, &order.Subtotal,
		&order.Discount, &order.Total, &order.CouponCode, &order.ShippingAddress, &order.PaymentRef,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	itemQuery := `
		SELECT id, order_id, variant_id, sku, name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.SKU, &item.Name,
			&item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return order, nil
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, customer_id, status, subtotal, discount, total, coupon_code, shipping_address, payment_ref, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryOrders(ctx, query, customerID, limit, offset)
}

func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, customer_id, status, subtotal, discount, total, coupon_code, shipping_address, payment_ref, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryOrders(ctx, query, limit, offset)
}

func (r *orderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.Status, &order.Subtotal,
			&order.Discount, &order.Total, &order.CouponCode, &order.ShippingAddress, &order.PaymentRef,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *orderRepo) SetPaymentRef(ctx context.Context, id uuid.UUID, paymentRef string) error {
	query := `UPDATE orders SET payment_ref = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, paymentRef, id)
	return err
}
