package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment. Only COMPLETED payments
// affect an account balance.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// PaymentType is the derived monetary direction of a payment. It is never
// stored; it is computed from the parent transaction reference and its
// return flag at the moment of each lifecycle operation.
type PaymentType string

const (
	PaymentTypeIncome   PaymentType = "INCOME"
	PaymentTypeExpense  PaymentType = "EXPENSE"
	PaymentTypeTransfer PaymentType = "TRANSFER"
)

// ParentKind names the business transaction a payment can be linked to.
type ParentKind string

const (
	ParentSale     ParentKind = "SALE"
	ParentPurchase ParentKind = "PURCHASE"
	ParentExpense  ParentKind = "EXPENSE"
	ParentSalary   ParentKind = "SALARY"
)

// ParentRef identifies the single business transaction a payment belongs to.
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   string     `json:"id"`
}

// ParentFlags is the classification input read from the parent transaction:
// its identity plus whether it reverses an earlier transaction. It is fetched
// once per ledger operation and passed into ClassifyPaymentType, never
// re-read mid-operation.
type ParentFlags struct {
	Kind     ParentKind `json:"kind"`
	ID       string     `json:"id"`
	IsReturn bool       `json:"isReturn"`
}

// Payment records one monetary movement into or out of an account, linked to
// at most one business transaction.
type Payment struct {
	PaymentID  string          `json:"paymentID"`
	TenantID   string          `json:"tenantID"`
	Amount     decimal.Decimal `json:"amount"` // always positive
	Method     string          `json:"method"`
	Reference  string          `json:"reference"` // external transaction reference
	Status     PaymentStatus   `json:"status"`
	SaleID     *string         `json:"saleID,omitempty"`
	PurchaseID *string         `json:"purchaseID,omitempty"`
	ExpenseID  *string         `json:"expenseID,omitempty"`
	SalaryID   *string         `json:"salaryID,omitempty"`
	AccountID  *string         `json:"accountID,omitempty"`
	AuditFields
}

// Snapshot captures the balance-relevant state of a payment before a
// mutation. Update and delete deltas are computed against it, and the storage
// layer uses it as an optimistic predicate so concurrent mutations of the
// same payment cannot both apply.
type Snapshot struct {
	Amount decimal.Decimal
	Status PaymentStatus
}

// Snapshot returns the payment's current balance-relevant state.
func (p Payment) Snapshot() Snapshot {
	return Snapshot{Amount: p.Amount, Status: p.Status}
}

var errMultipleParents = errors.New("payment may reference at most one parent transaction")

// ParentRef returns the single parent transaction reference, nil when the
// payment is unlinked (a transfer), or an error when more than one is set.
func (p Payment) ParentRef() (*ParentRef, error) {
	var ref *ParentRef
	set := func(kind ParentKind, id *string) error {
		if id == nil {
			return nil
		}
		if ref != nil {
			return errMultipleParents
		}
		ref = &ParentRef{Kind: kind, ID: *id}
		return nil
	}
	for _, candidate := range []struct {
		kind ParentKind
		id   *string
	}{
		{ParentSale, p.SaleID},
		{ParentPurchase, p.PurchaseID},
		{ParentExpense, p.ExpenseID},
		{ParentSalary, p.SalaryID},
	} {
		if err := set(candidate.kind, candidate.id); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

// Validate checks the payment's intrinsic invariants: a positive amount, a
// known status, and at most one parent reference.
func (p Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("payment amount must be positive")
	}
	switch p.Status {
	case PaymentPending, PaymentCompleted, PaymentCancelled:
	default:
		return errors.New("unknown payment status " + string(p.Status))
	}
	if _, err := p.ParentRef(); err != nil {
		return err
	}
	return nil
}

// ClassifyPaymentType derives the monetary direction of a payment from its
// parent transaction. The return flag flips direction for sales and
// purchases: a sale return sends money back out to the customer, a purchase
// return brings refunded money back in. An unlinked payment is a transfer
// and has no balance effect here.
func ClassifyPaymentType(parent *ParentFlags) PaymentType {
	if parent == nil {
		return PaymentTypeTransfer
	}
	switch parent.Kind {
	case ParentSale:
		if parent.IsReturn {
			return PaymentTypeExpense
		}
		return PaymentTypeIncome
	case ParentPurchase:
		if parent.IsReturn {
			return PaymentTypeIncome
		}
		return PaymentTypeExpense
	case ParentExpense, ParentSalary:
		return PaymentTypeExpense
	default:
		return PaymentTypeTransfer
	}
}
