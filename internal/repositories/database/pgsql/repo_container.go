package pgsql

import (
	portsrepo "github.com/dokanly/posledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repository implementations.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		PaymentRepo: newPgxPaymentRepository(dbPool),
		ParentRepo:  newPgxParentTransactionRepository(dbPool),
	}
}
