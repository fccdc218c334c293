package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dokanly/posledger/internal/apperrors"
	"github.com/dokanly/posledger/internal/core/domain"
	portsrepo "github.com/dokanly/posledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxParentTransactionRepository reads the classification flags of parent
// transactions. The ledger never writes these tables; the checkout,
// purchasing and payroll modules own them.
type PgxParentTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.ParentTransactionReader = (*PgxParentTransactionRepository)(nil)

// newPgxParentTransactionRepository creates a new reader for parent
// transaction flags.
func newPgxParentTransactionRepository(pool *pgxpool.Pool) *PgxParentTransactionRepository {
	return &PgxParentTransactionRepository{BaseRepository{Pool: pool}}
}

// FindParentFlags resolves ref to its classification flags. Sales and
// purchases carry a return flag; expenses and salaries only need to exist.
func (r *PgxParentTransactionRepository) FindParentFlags(ctx context.Context, tc domain.TenantContext, ref domain.ParentRef) (*domain.ParentFlags, error) {
	flags := domain.ParentFlags{Kind: ref.Kind, ID: ref.ID}

	var err error
	switch ref.Kind {
	case domain.ParentSale:
		err = r.Pool.QueryRow(ctx,
			`SELECT is_return FROM sales WHERE sale_id = $1 AND tenant_id = $2;`,
			ref.ID, tc.TenantID).Scan(&flags.IsReturn)
	case domain.ParentPurchase:
		err = r.Pool.QueryRow(ctx,
			`SELECT is_return FROM purchases WHERE purchase_id = $1 AND tenant_id = $2;`,
			ref.ID, tc.TenantID).Scan(&flags.IsReturn)
	case domain.ParentExpense:
		var exists bool
		err = r.Pool.QueryRow(ctx,
			`SELECT TRUE FROM expenses WHERE expense_id = $1 AND tenant_id = $2;`,
			ref.ID, tc.TenantID).Scan(&exists)
	case domain.ParentSalary:
		var exists bool
		err = r.Pool.QueryRow(ctx,
			`SELECT TRUE FROM salaries WHERE salary_id = $1 AND tenant_id = $2;`,
			ref.ID, tc.TenantID).Scan(&exists)
	default:
		return nil, fmt.Errorf("unknown parent kind %q: %w", ref.Kind, apperrors.ErrValidation)
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s %s: %w", ref.Kind, ref.ID, err)
	}
	return &flags, nil
}
