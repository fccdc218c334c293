package services_test

import (
	"context"
	"testing"

	"github.com/dokanly/posledger/internal/apperrors"
	"github.com/dokanly/posledger/internal/core/domain"
	portsrepo "github.com/dokanly/posledger/internal/core/ports/repositories"
	"github.com/dokanly/posledger/internal/core/services"
	"github.com/dokanly/posledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, tc domain.TenantContext, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, tc, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByAccount(ctx context.Context, tc domain.TenantContext, accountID string, limit int, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, tc, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, delta decimal.Decimal) error {
	args := m.Called(ctx, payment, delta)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment, prev domain.Snapshot, delta decimal.Decimal) error {
	args := m.Called(ctx, tc, payment, prev, delta)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment, prev domain.Snapshot, delta decimal.Decimal) error {
	args := m.Called(ctx, tc, payment, prev, delta)
	return args.Error(0)
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

// MockParentTransactionRepository is a mock type for the ParentTransactionReader interface
type MockParentTransactionRepository struct {
	mock.Mock
}

func (m *MockParentTransactionRepository) FindParentFlags(ctx context.Context, tc domain.TenantContext, ref domain.ParentRef) (*domain.ParentFlags, error) {
	args := m.Called(ctx, tc, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParentFlags), args.Error(1)
}

var _ portsrepo.ParentTransactionReader = (*MockParentTransactionRepository)(nil)

// deltaEq matches a decimal argument by value.
func deltaEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(expected)
	})
}

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockAccountRepo *MockAccountRepository
	mockParentRepo  *MockParentTransactionRepository
	service         *services.PaymentService
	tc              domain.TenantContext
	userID          string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockParentRepo = new(MockParentTransactionRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockAccountRepo, suite.mockParentRepo)
	suite.tc = domain.TenantContext{TenantID: uuid.NewString()}
	suite.userID = uuid.NewString()
}

func (suite *PaymentServiceTestSuite) activeAccount(accountID string, balance int64) *domain.Account {
	return &domain.Account{
		AccountID:      accountID,
		TenantID:       suite.tc.TenantID,
		Name:           "Shop Cash",
		AccountType:    domain.AccountTypeCash,
		CurrentBalance: decimal.NewFromInt(balance),
		IsActive:       true,
	}
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CompletedSale_CreditsAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount:    decimal.NewFromInt(500),
		Method:    "CASH",
		Status:    domain.PaymentCompleted,
		AccountID: &accountID,
		SaleID:    &saleID,
	}

	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, domain.ParentRef{Kind: domain.ParentSale, ID: saleID}).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tc, accountID).
		Return(suite.activeAccount(accountID, 1000), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), deltaEq(decimal.NewFromInt(500))).
		Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, suite.tc, req, suite.userID)

	suite.NoError(err)
	suite.NotNil(payment)
	suite.Equal(domain.PaymentCompleted, payment.Status)
	suite.Equal(suite.tc.TenantID, payment.TenantID)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockParentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_PendingSale_NoBalanceEffect() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount:    decimal.NewFromInt(500),
		Method:    "CASH",
		Status:    domain.PaymentPending,
		AccountID: &accountID,
		SaleID:    &saleID,
	}

	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tc, accountID).
		Return(suite.activeAccount(accountID, 1000), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), deltaEq(decimal.Zero)).
		Return(nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.tc, req, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CompletedSaleReturn_DebitsAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount:    decimal.NewFromInt(120),
		Method:    "CASH",
		Status:    domain.PaymentCompleted,
		AccountID: &accountID,
		SaleID:    &saleID,
	}

	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID, IsReturn: true}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tc, accountID).
		Return(suite.activeAccount(accountID, 1000), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), deltaEq(decimal.NewFromInt(-120))).
		Return(nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.tc, req, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnlinkedCompleted_IsTransferWithNoEffect() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount:    decimal.NewFromInt(300),
		Method:    "BANK",
		Status:    domain.PaymentCompleted,
		AccountID: &accountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tc, accountID).
		Return(suite.activeAccount(accountID, 1000), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), deltaEq(decimal.Zero)).
		Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, suite.tc, req, suite.userID)

	suite.NoError(err)
	paymentType, err := suite.service.ClassifyPayment(ctx, suite.tc, *payment)
	suite.NoError(err)
	suite.Equal(domain.PaymentTypeTransfer, paymentType)
	suite.mockParentRepo.AssertNotCalled(suite.T(), "FindParentFlags")
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CompletedWithoutAccount_Rejected() {
	ctx := context.Background()
	saleID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(500),
		Method: "CASH",
		Status: domain.PaymentCompleted,
		SaleID: &saleID,
	}

	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.tc, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_MultipleParents_Rejected() {
	ctx := context.Background()
	saleID := uuid.NewString()
	expenseID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount:    decimal.NewFromInt(50),
		Method:    "CASH",
		Status:    domain.PaymentPending,
		SaleID:    &saleID,
		ExpenseID: &expenseID,
	}

	_, err := suite.service.CreatePayment(ctx, suite.tc, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_ParentNotFound_Rejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount:    decimal.NewFromInt(500),
		Method:    "CASH",
		Status:    domain.PaymentCompleted,
		AccountID: &accountID,
		SaleID:    &saleID,
	}

	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreatePayment(ctx, suite.tc, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) existingSalePayment(accountID, saleID string, amount int64, status domain.PaymentStatus) *domain.Payment {
	return &domain.Payment{
		PaymentID: uuid.NewString(),
		TenantID:  suite.tc.TenantID,
		Amount:    decimal.NewFromInt(amount),
		Method:    "CASH",
		Status:    status,
		SaleID:    &saleID,
		AccountID: &accountID,
	}
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_AmountIncrease_AppliesDifference() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	existing := suite.existingSalePayment(accountID, saleID, 500, domain.PaymentCompleted)
	newAmount := decimal.NewFromInt(700)
	req := dto.UpdatePaymentRequest{Amount: &newAmount}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.tc, existing.PaymentID).
		Return(existing, nil).Once()
	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, suite.tc, mock.AnythingOfType("domain.Payment"), existing.Snapshot(), deltaEq(decimal.NewFromInt(200))).
		Return(nil).Once()

	updated, err := suite.service.UpdatePayment(ctx, suite.tc, existing.PaymentID, req, suite.userID)

	suite.NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_AmountDecrease_PartiallyReverses() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	existing := suite.existingSalePayment(accountID, saleID, 700, domain.PaymentCompleted)
	newAmount := decimal.NewFromInt(650)
	req := dto.UpdatePaymentRequest{Amount: &newAmount}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.tc, existing.PaymentID).
		Return(existing, nil).Once()
	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, suite.tc, mock.AnythingOfType("domain.Payment"), existing.Snapshot(), deltaEq(decimal.NewFromInt(-50))).
		Return(nil).Once()

	_, err := suite.service.UpdatePayment(ctx, suite.tc, existing.PaymentID, req, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_Cancellation_ReversesOldEffect() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	existing := suite.existingSalePayment(accountID, saleID, 650, domain.PaymentCompleted)
	cancelled := domain.PaymentCancelled
	req := dto.UpdatePaymentRequest{Status: &cancelled}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.tc, existing.PaymentID).
		Return(existing, nil).Once()
	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, suite.tc, mock.AnythingOfType("domain.Payment"), existing.Snapshot(), deltaEq(decimal.NewFromInt(-650))).
		Return(nil).Once()

	_, err := suite.service.UpdatePayment(ctx, suite.tc, existing.PaymentID, req, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_PendingToCompletedWithNewAmount_AppliesFullNewAmount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	existing := suite.existingSalePayment(accountID, saleID, 500, domain.PaymentPending)
	newAmount := decimal.NewFromInt(800)
	completed := domain.PaymentCompleted
	req := dto.UpdatePaymentRequest{Amount: &newAmount, Status: &completed}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.tc, existing.PaymentID).
		Return(existing, nil).Once()
	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, suite.tc, mock.AnythingOfType("domain.Payment"), existing.Snapshot(), deltaEq(decimal.NewFromInt(800))).
		Return(nil).Once()

	_, err := suite.service.UpdatePayment(ctx, suite.tc, existing.PaymentID, req, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_ConflictSurfaces() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	existing := suite.existingSalePayment(accountID, saleID, 500, domain.PaymentCompleted)
	newAmount := decimal.NewFromInt(700)
	req := dto.UpdatePaymentRequest{Amount: &newAmount}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.tc, existing.PaymentID).
		Return(existing, nil).Once()
	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, suite.tc, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.UpdatePayment(ctx, suite.tc, existing.PaymentID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_Completed_ReversesEffect() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	existing := suite.existingSalePayment(accountID, saleID, 500, domain.PaymentCompleted)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.tc, existing.PaymentID).
		Return(existing, nil).Once()
	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", ctx, suite.tc, *existing, existing.Snapshot(), deltaEq(decimal.NewFromInt(-500))).
		Return(nil).Once()

	err := suite.service.DeletePayment(ctx, suite.tc, existing.PaymentID, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_Pending_NoBalanceEffect() {
	ctx := context.Background()
	accountID := uuid.NewString()
	saleID := uuid.NewString()
	existing := suite.existingSalePayment(accountID, saleID, 500, domain.PaymentPending)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.tc, existing.PaymentID).
		Return(existing, nil).Once()
	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, mock.Anything).
		Return(&domain.ParentFlags{Kind: domain.ParentSale, ID: saleID}, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", ctx, suite.tc, *existing, existing.Snapshot(), deltaEq(decimal.Zero)).
		Return(nil).Once()

	err := suite.service.DeletePayment(ctx, suite.tc, existing.PaymentID, suite.userID)

	suite.NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestClassifyPayment_PurchaseReturn_IsIncome() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	payment := domain.Payment{
		PaymentID:  uuid.NewString(),
		TenantID:   suite.tc.TenantID,
		Amount:     decimal.NewFromInt(100),
		Status:     domain.PaymentCompleted,
		PurchaseID: &purchaseID,
	}

	suite.mockParentRepo.On("FindParentFlags", ctx, suite.tc, domain.ParentRef{Kind: domain.ParentPurchase, ID: purchaseID}).
		Return(&domain.ParentFlags{Kind: domain.ParentPurchase, ID: purchaseID, IsReturn: true}, nil).Once()

	paymentType, err := suite.service.ClassifyPayment(ctx, suite.tc, payment)

	suite.NoError(err)
	suite.Equal(domain.PaymentTypeIncome, paymentType)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
