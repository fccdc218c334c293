package services

import (
	"context"

	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/dokanly/posledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account within the tenant scope.
	GetAccountByID(ctx context.Context, tc domain.TenantContext, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of the tenant's accounts.
	ListAccounts(ctx context.Context, tc domain.TenantContext, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account with its opening balance.
	CreateAccount(ctx context.Context, tc domain.TenantContext, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's descriptive fields.
	UpdateAccount(ctx context.Context, tc domain.TenantContext, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// SetDefaultAccount makes accountID the tenant's single default account.
	SetDefaultAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string) (*domain.Account, error)

	// DeleteAccount soft-deletes the account; barred while any payment or
	// parent transaction references it.
	DeleteAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string) error
}

// AccountTransferSvc defines the account-to-account transfer operation.
type AccountTransferSvc interface {
	// Transfer atomically moves req.Amount between two accounts.
	Transfer(ctx context.Context, tc domain.TenantContext, req dto.TransferRequest, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountTransferSvc
}
