package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the concrete pgx repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool, accountRepo)
	financialYearRepo := newPgxFinancialYearRepository(dbPool)
	pendingChangeRepo := newPgxPendingChangeRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	statsRepo := newStatsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:       accountRepo,
		VoucherRepo:       voucherRepo,
		FinancialYearRepo: financialYearRepo,
		PendingChangeRepo: pendingChangeRepo,
		ReportingRepo:     reportingRepo,
		StatsRepo:         statsRepo,
	}
}
