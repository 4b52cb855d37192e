package services

import (
	"context"
	"errors"
	"fmt"

	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
)

type ProductRating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type ReviewService interface {
	AddReview(ctx context.Context, review *models.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error)
	Rating(ctx context.Context, productID uuid.UUID) (*ProductRating, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *reviewService) AddReview(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if _, err := s.productRepo.GetByID(ctx, review.ProductID); err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	exists, err := s.reviewRepo.ExistsForCustomer(ctx, review.ProductID, review.CustomerID)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("customer has already reviewed this product")
	}

	review.ID = uuid.New()
	return s.reviewRepo.Create(ctx, review)
}

func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID, limit, offset)
}

func (s *reviewService) Rating(ctx context.Context, productID uuid.UUID) (*ProductRating, error) {
	avg, count, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductRating{Average: avg, Count: count}, nil
}

func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reviewRepo.Delete(ctx, id)
}
