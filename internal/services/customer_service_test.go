package services

import (
	"context"
	"testing"

	"dukamart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	service          CustomerService
	ctx              context.Context
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = &MockCustomerRepository{}
	suite.service = NewCustomerService(suite.mockCustomerRepo)
	suite.ctx = context.Background()
}

func (suite *CustomerServiceTestSuite) TearDownTest() {
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func (suite *CustomerServiceTestSuite) TestRegister_NormalizesEmail() {
	customer := &models.Customer{Email: "  Wanjiku@Example.COM ", FullName: "Wanjiku Kamau"}
	suite.mockCustomerRepo.On("GetByEmail", suite.ctx, "wanjiku@example.com").
		Return(nil, pgx.ErrNoRows).Once()
	suite.mockCustomerRepo.On("Create", suite.ctx, mock.MatchedBy(func(c *models.Customer) bool {
		return c.Email == "wanjiku@example.com" && c.IsActive && c.ID != uuid.Nil
	})).Return(nil).Once()

	err := suite.service.Register(suite.ctx, customer)
	suite.NoError(err)
}

func (suite *CustomerServiceTestSuite) TestRegister_Validation() {
	tests := []struct {
		name     string
		customer *models.Customer
	}{
		{"empty email", &models.Customer{FullName: "Wanjiku Kamau"}},
		{"malformed email", &models.Customer{Email: "not-an-email", FullName: "Wanjiku Kamau"}},
		{"missing name", &models.Customer{Email: "wanjiku@example.com", FullName: "  "}},
	}

	for _, tt := range tests {
		err := suite.service.Register(suite.ctx, tt.customer)
		suite.Error(err, tt.name)
	}
}

func (suite *CustomerServiceTestSuite) TestRegister_ExistingEmail() {
	customer := &models.Customer{Email: "wanjiku@example.com", FullName: "Wanjiku Kamau"}
	suite.mockCustomerRepo.On("GetByEmail", suite.ctx, "wanjiku@example.com").
		Return(&models.Customer{ID: uuid.New(), Email: "wanjiku@example.com"}, nil).Once()

	err := suite.service.Register(suite.ctx, customer)
	suite.ErrorIs(err, ErrEmailTaken)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *CustomerServiceTestSuite) TestRegister_UniqueViolationOnCreate() {
	// Lookup races with a concurrent registration; the constraint catches it.
	customer := &models.Customer{Email: "wanjiku@example.com", FullName: "Wanjiku Kamau"}
	suite.mockCustomerRepo.On("GetByEmail", suite.ctx, "wanjiku@example.com").
		Return(nil, pgx.ErrNoRows).Once()
	suite.mockCustomerRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Customer")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}).Once()

	err := suite.service.Register(suite.ctx, customer)
	suite.ErrorIs(err, ErrEmailTaken)
}

func (suite *CustomerServiceTestSuite) TestUpdateProfile_RequiresName() {
	err := suite.service.UpdateProfile(suite.ctx, &models.Customer{ID: uuid.New(), FullName: ""})
	suite.Error(err)
}

func (suite *CustomerServiceTestSuite) TestDeactivate() {
	customerID := uuid.New()
	suite.mockCustomerRepo.On("Deactivate", suite.ctx, customerID).Return(nil).Once()
	suite.NoError(suite.service.Deactivate(suite.ctx, customerID))
}
