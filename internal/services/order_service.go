package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
)

type OrderService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, couponCode, shippingAddress string) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	RecordPayment(ctx context.Context, intent *models.PaymentIntent) error
}

// allowedTransitions encodes the order lifecycle. Cancellation is allowed
// until the order ships.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped: {models.OrderStatusDelivered},
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	inventoryRepo repositories.InventoryRepository
	cartService   CartService
	couponService CouponService
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	inventoryRepo repositories.InventoryRepository,
	cartService CartService,
	couponService CouponService,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		cartService:   cartService,
		couponService: couponService,
	}
}

// Checkout turns the customer's cart into a pending order: validates the
// coupon, decrements stock per item, persists the order with its items, then
// clears the cart. Stock already taken is not compensated when a later item
// fails; the conditional decrement keeps totals non-negative.
func (s *orderService) Checkout(ctx context.Context, customerID uuid.UUID, couponCode, shippingAddress string) (*models.Order, error) {
	if shippingAddress == "" {
		return nil, errors.New("shipping address is required")
	}

	cart, err := s.cartService.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	subtotal := cart.Subtotal()

	var discount float64
	var coupon *models.Coupon
	if couponCode != "" {
		coupon, discount, err = s.couponService.Validate(ctx, couponCode, subtotal, time.Now())
		if err != nil {
			return nil, fmt.Errorf("coupon rejected: %w", err)
		}
	}

	for _, item := range cart.Items {
		if err := s.inventoryRepo.Decrement(ctx, item.VariantID, item.Quantity); err != nil {
			return nil, fmt.Errorf("cannot fulfil %s: %w", item.SKU, err)
		}
	}

	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		Status:          models.OrderStatusPending,
		Subtotal:        subtotal,
		Discount:        discount,
		Total:           subtotal - discount,
		ShippingAddress: shippingAddress,
	}
	if coupon != nil {
		order.CouponCode = &coupon.Code
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, &models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			VariantID: item.VariantID,
			SKU:       item.SKU,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if coupon != nil {
		if err := s.couponService.Redeem(ctx, coupon.ID); err != nil {
			log.Printf("WARN: failed to record coupon usage for %s: %v", coupon.Code, err)
		}
	}

	if err := s.cartService.ClearCart(ctx, customerID); err != nil {
		log.Printf("WARN: failed to clear cart for customer %s: %v", customerID.String(), err)
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID, limit, offset)
}

func (s *orderService) ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.List(ctx, limit, offset)
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !transitionAllowed(order.Status, status) {
		return fmt.Errorf("cannot transition order from %s to %s", order.Status, status)
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

// RecordPayment applies the gateway's verdict: success marks the order paid,
// failure cancels it. The payment reference is stored either way.
func (s *orderService) RecordPayment(ctx context.Context, intent *models.PaymentIntent) error {
	order, err := s.orderRepo.GetByID(ctx, intent.OrderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusPending {
		return fmt.Errorf("order %s is not awaiting payment", intent.OrderID.String())
	}

	if err := s.orderRepo.SetPaymentRef(ctx, intent.OrderID, intent.Reference); err != nil {
		return err
	}

	status := models.OrderStatusPaid
	if !intent.Succeeded {
		status = models.OrderStatusCancelled
	}
	return s.orderRepo.UpdateStatus(ctx, intent.OrderID, status)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
