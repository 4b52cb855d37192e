package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponNotStarted  = errors.New("coupon is not valid yet")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
	ErrCouponMinSubtotal = errors.New("order subtotal below coupon minimum")
)

type CouponService interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	List(ctx context.Context, limit, offset int) ([]*models.Coupon, error)
	Validate(ctx context.Context, code string, subtotal float64, at time.Time) (*models.Coupon, float64, error)
	Redeem(ctx context.Context, couponID uuid.UUID) error
	Deactivate(ctx context.Context, couponID uuid.UUID) error
}

type couponService struct {
	couponRepo repositories.CouponRepository
}

func NewCouponService(couponRepo repositories.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return errors.New("coupon code is required")
	}
	if coupon.Type != models.CouponTypePercent && coupon.Type != models.CouponTypeFixed {
		return fmt.Errorf("coupon type must be %q or %q", models.CouponTypePercent, models.CouponTypeFixed)
	}
	if coupon.Value <= 0 {
		return errors.New("coupon value must be positive")
	}
	if coupon.Type == models.CouponTypePercent && coupon.Value > 100 {
		return errors.New("percent coupon cannot exceed 100")
	}
	if coupon.EndsAt.Before(coupon.StartsAt) {
		return errors.New("coupon end date cannot be before start date")
	}

	coupon.ID = uuid.New()
	coupon.IsActive = true
	return s.couponRepo.Create(ctx, coupon)
}

func (s *couponService) List(ctx context.Context, limit, offset int) ([]*models.Coupon, error) {
	return s.couponRepo.List(ctx, limit, offset)
}

// Validate checks a code against its window, usage limit and minimum
// subtotal, returning the coupon and the discount it grants.
func (s *couponService) Validate(ctx context.Context, code string, subtotal float64, at time.Time) (*models.Coupon, float64, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrCouponNotFound
		}
		return nil, 0, err
	}

	switch {
	case !coupon.IsActive:
		return nil, 0, ErrCouponInactive
	case at.Before(coupon.StartsAt):
		return nil, 0, ErrCouponNotStarted
	case at.After(coupon.EndsAt):
		return nil, 0, ErrCouponExpired
	case coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit:
		return nil, 0, ErrCouponExhausted
	case subtotal < coupon.MinSubtotal:
		return nil, 0, ErrCouponMinSubtotal
	}

	return coupon, coupon.DiscountFor(subtotal), nil
}

func (s *couponService) Redeem(ctx context.Context, couponID uuid.UUID) error {
	return s.couponRepo.IncrementUsage(ctx, couponID)
}

func (s *couponService) Deactivate(ctx context.Context, couponID uuid.UUID) error {
	return s.couponRepo.Deactivate(ctx, couponID)
}
