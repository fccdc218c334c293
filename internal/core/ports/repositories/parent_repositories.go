package repositories

import (
	"context"

	"github.com/dokanly/posledger/internal/core/domain"
)

// ParentTransactionReader resolves a payment's parent transaction reference
// to its classification flags. Sales and purchases carry a return flag that
// flips the payment direction; expense and salary records never do. The
// parent modules themselves (checkout, purchasing, payroll) live outside the
// ledger; this port is the only thing the ledger needs from them.
type ParentTransactionReader interface {
	// FindParentFlags returns the flags for ref, or ErrNotFound when the
	// referenced transaction does not exist in the tenant scope.
	FindParentFlags(ctx context.Context, tc domain.TenantContext, ref domain.ParentRef) (*domain.ParentFlags, error)
}
