package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dokanly/posledger/internal/apperrors"
	"github.com/dokanly/posledger/internal/core/domain"
	"github.com/dokanly/posledger/internal/core/ports/repositories"
	portssvc "github.com/dokanly/posledger/internal/core/ports/services"
	"github.com/dokanly/posledger/internal/dto"
	"github.com/dokanly/posledger/internal/middleware"
	"github.com/google/uuid"
)

// AccountService implements account management on top of the account
// repository. Balance mutations never go through this service's update path;
// they happen only via the payment lifecycle and Transfer.
type AccountService struct {
	accountRepo repositories.AccountRepositoryFacade
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repositories.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccountByID retrieves a specific account within the tenant scope.
func (s *AccountService) GetAccountByID(ctx context.Context, tc domain.TenantContext, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, tc, accountID)
}

// ListAccounts retrieves a paginated list of the tenant's accounts.
func (s *AccountService) ListAccounts(ctx context.Context, tc domain.TenantContext, limit int, offset int) ([]domain.Account, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.accountRepo.ListAccounts(ctx, tc, limit, offset)
}

// CreateAccount persists a new account. The current balance starts at the
// opening balance; if the request marks it default, the default flag is moved
// to it atomically after the insert.
func (s *AccountService) CreateAccount(ctx context.Context, tc domain.TenantContext, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	account := domain.Account{
		AccountID:      uuid.NewString(),
		TenantID:       tc.TenantID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, err
	}

	if req.IsDefault {
		if err := s.accountRepo.SetDefaultAccount(ctx, tc, account.AccountID, userID, now); err != nil {
			logger.Error("Failed to set new account as default",
				slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
			return nil, err
		}
		account.IsDefault = true
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// UpdateAccount updates an account's descriptive fields. The balance cannot
// be changed here.
func (s *AccountService) UpdateAccount(ctx context.Context, tc domain.TenantContext, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tc, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, tc, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// SetDefaultAccount makes accountID the tenant's single default account. The
// repository clears every other default flag in the same transaction, so at
// most one default exists per tenant at any time.
func (s *AccountService) SetDefaultAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tc, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account %q is inactive: %w", account.Name, apperrors.ErrValidation)
	}

	now := time.Now()
	if err := s.accountRepo.SetDefaultAccount(ctx, tc, accountID, userID, now); err != nil {
		return nil, err
	}

	account.IsDefault = true
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	middleware.GetLoggerFromCtx(ctx).Info("Default account changed",
		slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount soft-deletes the account. Deletion is barred while any
// payment or parent transaction still references the account, so historic
// ledger entries keep a resolvable funding source.
func (s *AccountService) DeleteAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, tc, accountID)
	if err != nil {
		return err
	}

	refs, err := s.accountRepo.CountAccountReferences(ctx, tc, accountID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("account %q is referenced by %d transaction(s): %w",
			account.Name, refs, apperrors.ErrConflict)
	}

	if err := s.accountRepo.SoftDeleteAccount(ctx, tc, accountID, userID, time.Now()); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Account deleted",
		slog.String("account_id", accountID))
	return nil
}

// Transfer atomically moves money between two accounts of the tenant. The
// debit side is subject to the non-negative balance floor; on rejection
// neither balance changes.
func (s *AccountService) Transfer(ctx context.Context, tc domain.TenantContext, req dto.TransferRequest, userID string) error {
	if err := s.accountRepo.TransferBalance(ctx, tc, req.FromAccountID, req.ToAccountID, req.Amount, userID, time.Now()); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Transfer completed",
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("amount", req.Amount.StringFixed(2)))
	return nil
}

// normalizePagination clamps list parameters to sane bounds.
func normalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
