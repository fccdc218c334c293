package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dokanly/posledger/internal/apperrors"
	"github.com/dokanly/posledger/internal/core/domain"
	portsrepo "github.com/dokanly/posledger/internal/core/ports/repositories"
	"github.com/dokanly/posledger/internal/models"
	"github.com/dokanly/posledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxAccountRepository persists accounts in PostgreSQL.
type PgxAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

const accountColumns = `account_id, tenant_id, name, account_type, opening_balance, current_balance, is_active, is_default, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

// rowScanner abstracts pgx.Row and pgx.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Name,
		&m.AccountType,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.IsDefault,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// deletedPredicate narrows reads to live rows unless the caller explicitly
// widened the scope.
func deletedPredicate(tc domain.TenantContext) string {
	if tc.IncludeDeleted {
		return ""
	}
	return " AND deleted_at IS NULL"
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.Name,
		m.AccountType,
		m.OpeningBalance,
		m.CurrentBalance,
		m.IsActive,
		m.IsDefault,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID within the tenant scope.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tc domain.TenantContext, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND tenant_id = $2` + deletedPredicate(tc) + `;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, tc.TenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// ListAccounts retrieves a paginated list of the tenant's accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tc domain.TenantContext, limit int, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1` + deletedPredicate(tc) + `
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tc.TenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for tenant %s: %w", tc.TenantID, err)
	}
	defer rows.Close()

	accountModels := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for tenant %s: %w", tc.TenantID, err)
		}
		accountModels = append(accountModels, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for tenant %s: %w", tc.TenantID, rows.Err())
	}

	return mapping.ToDomainAccountSlice(accountModels), nil
}

// CountAccountReferences counts the payments and parent transactions that
// still reference the account. A non-zero count bars deletion.
func (r *PgxAccountRepository) CountAccountReferences(ctx context.Context, tc domain.TenantContext, accountID string) (int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM payments  WHERE account_id = $1 AND tenant_id = $2) +
			(SELECT COUNT(*) FROM sales     WHERE account_id = $1 AND tenant_id = $2) +
			(SELECT COUNT(*) FROM purchases WHERE account_id = $1 AND tenant_id = $2) +
			(SELECT COUNT(*) FROM expenses  WHERE account_id = $1 AND tenant_id = $2) +
			(SELECT COUNT(*) FROM salaries  WHERE account_id = $1 AND tenant_id = $2);
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, accountID, tc.TenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count references for account %s: %w", accountID, err)
	}
	return count, nil
}

// UpdateAccount updates an account's descriptive fields. The balance columns
// are deliberately absent from the statement.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, tc domain.TenantContext, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1 AND tenant_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.Name,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetDefaultAccount clears the default flag across the tenant and sets it on
// accountID in one transaction, so at most one default survives any
// interleaving.
func (r *PgxAccountRepository) SetDefaultAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	clearQuery := `
		UPDATE accounts
		SET is_default = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $1 AND is_default = TRUE AND account_id <> $4;
	`
	if _, err := tx.Exec(ctx, clearQuery, tc.TenantID, now, userID, accountID); err != nil {
		return fmt.Errorf("failed to clear default accounts for tenant %s: %w", tc.TenantID, err)
	}

	setQuery := `
		UPDATE accounts
		SET is_default = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND tenant_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, setQuery, accountID, tc.TenantID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set default account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// SoftDeleteAccount marks the account as deleted, keeping the row for
// historic ledger entries. A deleted account is also demoted from default.
func (r *PgxAccountRepository) SoftDeleteAccount(ctx context.Context, tc domain.TenantContext, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET deleted_at = $3, is_active = FALSE, is_default = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND tenant_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, tc.TenantID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to soft delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TransferBalance atomically debits fromID and credits toID. Both rows are
// locked in account_id order so two opposing transfers cannot deadlock, and
// the debit side is checked against the balance floor while locked.
func (r *PgxAccountRepository) TransferBalance(ctx context.Context, tc domain.TenantContext, fromID, toID string, amount decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	lockQuery := `
		SELECT account_id, name, current_balance
		FROM accounts
		WHERE account_id = ANY($1) AND tenant_id = $2 AND deleted_at IS NULL
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, []string{fromID, toID}, tc.TenantID)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for transfer: %w", err)
	}
	defer rows.Close()

	type lockedAccount struct {
		name    string
		balance decimal.Decimal
	}
	locked := make(map[string]lockedAccount, 2)
	for rows.Next() {
		var id string
		var acc lockedAccount
		if err := rows.Scan(&id, &acc.name, &acc.balance); err != nil {
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[id] = acc
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating locked account rows: %w", rows.Err())
	}
	rows.Close()

	from, ok := locked[fromID]
	if !ok {
		return fmt.Errorf("source account %s: %w", fromID, apperrors.ErrNotFound)
	}
	if _, ok := locked[toID]; !ok {
		return fmt.Errorf("destination account %s: %w", toID, apperrors.ErrNotFound)
	}

	if from.balance.LessThan(amount) {
		return apperrors.NewInsufficientFunds(from.name, from.balance, amount)
	}

	updateQuery := `
		UPDATE accounts
		SET current_balance = current_balance + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND tenant_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, fromID, tc.TenantID, amount.Neg(), now, userID); err != nil {
		return fmt.Errorf("failed to debit account %s: %w", fromID, err)
	}
	if _, err := tx.Exec(ctx, updateQuery, toID, tc.TenantID, amount, now, userID); err != nil {
		return fmt.Errorf("failed to credit account %s: %w", toID, err)
	}

	return r.Commit(ctx, tx)
}
