package services

import (
	"context"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/dokanly/posledger/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data.
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment within the tenant scope.
	GetPaymentByID(ctx context.Context, tc domain.TenantContext, paymentID string) (*domain.Payment, error)

	// ListPaymentsByAccount retrieves a paginated list of payments funded
	// by the given account.
	ListPaymentsByAccount(ctx context.Context, tc domain.TenantContext, accountID string, limit int, offset int) ([]domain.Payment, error)
}

// PaymentWriterSvc defines the payment lifecycle. Each mutation classifies
// the payment, reduces the state change to one signed balance delta and
// applies it together with the payment write as a single atomic unit.
type PaymentWriterSvc interface {
	// CreatePayment records a payment; a COMPLETED account-linked payment
	// adjusts the account balance at creation.
	CreatePayment(ctx context.Context, tc domain.TenantContext, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)

	// UpdatePayment edits amount/status and reconciles the account balance
	// against the previously persisted state.
	UpdatePayment(ctx context.Context, tc domain.TenantContext, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error)

	// DeletePayment reverses the payment's current effect and removes it.
	DeletePayment(ctx context.Context, tc domain.TenantContext, paymentID string, userID string) error
}

// PaymentClassifierSvc exposes the derived payment type.
type PaymentClassifierSvc interface {
	// ClassifyPayment resolves the payment's parent flags and returns its
	// monetary direction.
	ClassifyPayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment) (domain.PaymentType, error)
}

// PaymentSvcFacade combines all payment-related service interfaces.
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	PaymentClassifierSvc
}
