package repositories

import (
	"context"
	"time"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account within the tenant scope.
	FindAccountByID(ctx context.Context, tc domain.TenantContext, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for the tenant.
	ListAccounts(ctx context.Context, tc domain.TenantContext, limit int, offset int) ([]domain.Account, error)

	// CountAccountReferences returns how many payments and parent
	// transactions still reference the account. A non-zero count bars
	// deletion.
	CountAccountReferences(ctx context.Context, tc domain.TenantContext, accountID string) (int64, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields. The
	// balance is never written through this method.
	UpdateAccount(ctx context.Context, tc domain.TenantContext, account domain.Account) error

	// SetDefaultAccount clears the default flag on every other account of
	// the tenant and sets it on accountID, as one atomic unit.
	SetDefaultAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string, now time.Time) error

	// SoftDeleteAccount marks the account as deleted, retaining the row.
	SoftDeleteAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string, now time.Time) error
}

// AccountLedgerSupport defines the balance mutations the ledger itself needs.
type AccountLedgerSupport interface {
	// TransferBalance atomically debits fromID and credits toID. The debit
	// is subject to the non-negative balance floor.
	TransferBalance(ctx context.Context, tc domain.TenantContext, fromID, toID string, amount decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLedgerSupport
}
