package pgsql

import (
	"context"
	"errors"
	"fmt"

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

// PgxPaymentRepository persists payments in PostgreSQL. Every lifecycle
// mutation writes the payment row and applies the caller-computed balance
// delta to the funding account inside one transaction, so no interleaving can
// observe a payment without its balance effect or vice versa.
type PgxPaymentRepository struct {
	BaseRepository
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository{Pool: pool}}
}

const paymentColumns = `payment_id, tenant_id, amount, method, reference, status, sale_id, purchase_id, expense_id, salary_id, account_id, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row rowScanner) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.TenantID,
		&m.Amount,
		&m.Method,
		&m.Reference,
		&m.Status,
		&m.SaleID,
		&m.PurchaseID,
		&m.ExpenseID,
		&m.SalaryID,
		&m.AccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPaymentByID retrieves a payment by its ID within the tenant scope.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, tc domain.TenantContext, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_id = $1 AND tenant_id = $2;
	`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID, tc.TenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	d := mapping.ToDomainPayment(m)
	return &d, nil
}

// ListPaymentsByAccount retrieves a paginated list of payments funded by the
// given account, newest first.
func (r *PgxPaymentRepository) ListPaymentsByAccount(ctx context.Context, tc domain.TenantContext, accountID string, limit int, offset int) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND account_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, tc.TenantID, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for account %s: %w", accountID, err)
	}
	defer rows.Close()

	paymentModels := []models.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row for account %s: %w", accountID, err)
		}
		paymentModels = append(paymentModels, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows for account %s: %w", accountID, rows.Err())
	}

	return mapping.ToDomainPaymentSlice(paymentModels), nil
}

// SavePayment inserts the payment and applies delta to its funding account in
// the same transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, delta decimal.Decimal) error {
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if !delta.IsZero() {
		if err := applyBalanceDelta(ctx, tx, payment.TenantID, *payment.AccountID, delta); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.TenantID,
		m.Amount,
		m.Method,
		m.Reference,
		m.Status,
		m.SaleID,
		m.PurchaseID,
		m.ExpenseID,
		m.SalaryID,
		m.AccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment with ID %s already exists", apperrors.ErrDuplicate, m.PaymentID)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdatePayment rewrites the payment and applies delta. The persisted row is
// locked and compared against prev first; a mismatch means a concurrent
// mutation already applied and the delta no longer matches reality, so the
// whole write is rejected with ErrConflict.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment, prev domain.Snapshot, delta decimal.Decimal) error {
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := lockPaymentSnapshot(ctx, tx, tc, payment.PaymentID, prev); err != nil {
		return err
	}

	if !delta.IsZero() {
		if err := applyBalanceDelta(ctx, tx, tc.TenantID, *payment.AccountID, delta); err != nil {
			return err
		}
	}

	query := `
		UPDATE payments
		SET amount = $3, method = $4, reference = $5, status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE payment_id = $1 AND tenant_id = $2;
	`
	if _, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.TenantID,
		m.Amount,
		m.Method,
		m.Reference,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, err)
	}

	return r.Commit(ctx, tx)
}

// DeletePayment removes the payment and applies delta, guarded by the same
// snapshot predicate as UpdatePayment.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, tc domain.TenantContext, payment domain.Payment, prev domain.Snapshot, delta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := lockPaymentSnapshot(ctx, tx, tc, payment.PaymentID, prev); err != nil {
		return err
	}

	if !delta.IsZero() {
		if err := applyBalanceDelta(ctx, tx, tc.TenantID, *payment.AccountID, delta); err != nil {
			return err
		}
	}

	query := `DELETE FROM payments WHERE payment_id = $1 AND tenant_id = $2;`
	if _, err := tx.Exec(ctx, query, payment.PaymentID, tc.TenantID); err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", payment.PaymentID, err)
	}

	return r.Commit(ctx, tx)
}

// lockPaymentSnapshot locks the payment row and verifies it still matches the
// snapshot the caller computed its delta from.
func lockPaymentSnapshot(ctx context.Context, tx pgx.Tx, tc domain.TenantContext, paymentID string, prev domain.Snapshot) error {
	query := `
		SELECT amount, status
		FROM payments
		WHERE payment_id = $1 AND tenant_id = $2
		FOR UPDATE;
	`
	var amount decimal.Decimal
	var status models.PaymentStatus
	if err := tx.QueryRow(ctx, query, paymentID, tc.TenantID).Scan(&amount, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock payment %s: %w", paymentID, err)
	}

	if !amount.Equal(prev.Amount) || domain.PaymentStatus(status) != prev.Status {
		return fmt.Errorf("payment %s was modified concurrently: %w", paymentID, apperrors.ErrConflict)
	}
	return nil
}

// applyBalanceDelta locks the funding account row, enforces the non-negative
// balance floor for debits, and applies the signed delta.
func applyBalanceDelta(ctx context.Context, tx pgx.Tx, tenantID, accountID string, delta decimal.Decimal) error {
	lockQuery := `
		SELECT name, current_balance
		FROM accounts
		WHERE account_id = $1 AND tenant_id = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`
	var name string
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, lockQuery, accountID, tenantID).Scan(&name, &balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("funding account %s: %w", accountID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	if delta.IsNegative() && balance.LessThan(delta.Neg()) {
		return apperrors.NewInsufficientFunds(name, balance, delta.Neg())
	}

	updateQuery := `
		UPDATE accounts
		SET current_balance = current_balance + $3
		WHERE account_id = $1 AND tenant_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, accountID, tenantID, delta); err != nil {
		return fmt.Errorf("failed to apply balance delta to account %s: %w", accountID, err)
	}
	return nil
}
