package repositories

import (
	"context"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment within the tenant scope.
	FindPaymentByID(ctx context.Context, tc domain.TenantContext, paymentID string) (*domain.Payment, error)

	// ListPaymentsByAccount retrieves a paginated list of payments funded
	// by the given account, newest first.
	ListPaymentsByAccount(ctx context.Context, tc domain.TenantContext, accountID string, limit int, offset int) ([]domain.Payment, error)
}

// PaymentWriter defines the lifecycle mutations of a payment. Every method
// takes the signed balance delta (positive = credit) computed by the
// reconciliation policy and applies it to the payment's account in the same
// storage transaction as the payment write; if the delta would drive the
// balance negative, the whole operation is rejected and nothing persists.
type PaymentWriter interface {
	// SavePayment inserts the payment and applies delta to its account.
	SavePayment(ctx context.Context, payment domain.Payment, delta decimal.Decimal) error

	// UpdatePayment rewrites the payment and applies delta. prev is the
	// snapshot the delta was computed from; the store must reject the
	// write (ErrConflict) if the persisted row no longer matches it.
	UpdatePayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment, prev domain.Snapshot, delta decimal.Decimal) error

	// DeletePayment removes the payment and applies delta, with the same
	// snapshot predicate as UpdatePayment.
	DeletePayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment, prev domain.Snapshot, delta decimal.Decimal) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
