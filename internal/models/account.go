package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies where the money of an account physically lives.
type AccountType string

const (
	Cash           AccountType = "CASH"
	Bank           AccountType = "BANK"
	MobileProvider AccountType = "MOBILE_PROVIDER"
)

// Account is the persisted form of a money-holding account. CurrentBalance is
// a running figure maintained by the payment lifecycle and transfers; nothing
// else writes it.
type Account struct {
	AccountID      string          `db:"account_id"`
	TenantID       string          `db:"tenant_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	IsDefault      bool            `db:"is_default"`
	DeletedAt      *time.Time      `db:"deleted_at"` // Nullable; soft delete marker
	AuditFields
}
