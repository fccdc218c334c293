package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies where the money of an account physically lives.
type AccountType string

const (
	AccountTypeCash           AccountType = "CASH"
	AccountTypeBank           AccountType = "BANK"
	AccountTypeMobileProvider AccountType = "MOBILE_PROVIDER"
)

// Account is a money-holding entity (cash drawer, bank account, mobile-money
// wallet) with a persisted running balance. The balance is mutated exclusively
// through the ledger's payment lifecycle and the transfer operation; nothing
// else writes CurrentBalance.
type Account struct {
	AccountID      string          `json:"accountID"`
	TenantID       string          `json:"tenantID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	IsDefault      bool            `json:"isDefault"`
	DeletedAt      *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}

// FormattedBalance renders the current balance with two fractional digits
// for display, e.g. "1500.00".
func (a Account) FormattedBalance() string {
	return a.CurrentBalance.StringFixed(2)
}

// CanDebit reports whether a debit of amount would keep the balance
// non-negative. The debit floor: a debit exceeding the available balance is
// rejected, never clamped to zero.
func (a Account) CanDebit(amount decimal.Decimal) bool {
	return a.CurrentBalance.GreaterThanOrEqual(amount)
}

// IsDeleted reports whether the account has been soft-deleted.
func (a Account) IsDeleted() bool {
	return a.DeletedAt != nil
}
