package models

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is the persisted lifecycle state of a payment.
type PaymentStatus string

const (
	Pending   PaymentStatus = "PENDING"
	Completed PaymentStatus = "COMPLETED"
	Cancelled PaymentStatus = "CANCELLED"
)

// Payment is the persisted form of a payment. The payment type is never
// stored; it is derived from the parent reference at each lifecycle
// operation. At most one of the parent foreign keys is non-null.
type Payment struct {
	PaymentID  string          `db:"payment_id"`
	TenantID   string          `db:"tenant_id"`
	Amount     decimal.Decimal `db:"amount"`
	Method     string          `db:"method"`
	Reference  string          `db:"reference"`
	Status     PaymentStatus   `db:"status"`
	SaleID     *string         `db:"sale_id"`     // Nullable
	PurchaseID *string         `db:"purchase_id"` // Nullable
	ExpenseID  *string         `db:"expense_id"`  // Nullable
	SalaryID   *string         `db:"salary_id"`   // Nullable
	AccountID  *string         `db:"account_id"`  // Nullable; funding account
	AuditFields
}
