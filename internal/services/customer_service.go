package services

import (
	"context"
	"errors"
	"strings"

	"dukamart/internal/models"
	"dukamart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEmailTaken = errors.New("email already registered")

type CustomerService interface {
	Register(ctx context.Context, customer *models.Customer) error
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	UpdateProfile(ctx context.Context, customer *models.Customer) error
	List(ctx context.Context, limit, offset int) ([]*models.Customer, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Register(ctx context.Context, customer *models.Customer) error {
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if customer.Email == "" || !strings.Contains(customer.Email, "@") {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(customer.FullName) == "" {
		return errors.New("full name is required")
	}

	_, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	customer.ID = uuid.New()
	customer.IsActive = true
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if repositories.IsUniqueViolation(err, "email") {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *customerService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) UpdateProfile(ctx context.Context, customer *models.Customer) error {
	if strings.TrimSpace(customer.FullName) == "" {
		return errors.New("full name is required")
	}
	return s.customerRepo.Update(ctx, customer)
}

func (s *customerService) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	return s.customerRepo.List(ctx, limit, offset)
}

func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.customerRepo.Deactivate(ctx, id)
}
