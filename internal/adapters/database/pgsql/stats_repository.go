package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
)

// statsRepository persists the single-row aggregate counters snapshot and
// recomputes it from the live tables.
type statsRepository struct {
	BaseRepository
}

// newStatsRepository creates a new stats repository.
func newStatsRepository(pool *pgxpool.Pool) portsrepo.StatsRepository {
	return &statsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatsRepository = (*statsRepository)(nil)

// GetStats loads the persisted snapshot. ErrNotFound means no snapshot has
// been computed yet.
func (r *statsRepository) GetStats(ctx context.Context) (*domain.Stats, error) {
	query := `
		SELECT account_count, voucher_count, entry_count, accuracy_rate, financial_year, computed_at
		FROM stats WHERE id = 1;
	`
	var s domain.Stats
	err := r.Pool.QueryRow(ctx, query).Scan(
		&s.AccountCount, &s.VoucherCount, &s.EntryCount, &s.AccuracyRate, &s.FinancialYear, &s.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stats snapshot: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return &s, nil
}

// SaveStats upserts the snapshot row.
func (r *statsRepository) SaveStats(ctx context.Context, stats domain.Stats) error {
	query := `
		INSERT INTO stats (id, account_count, voucher_count, entry_count, accuracy_rate, financial_year, computed_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			account_count = EXCLUDED.account_count,
			voucher_count = EXCLUDED.voucher_count,
			entry_count = EXCLUDED.entry_count,
			accuracy_rate = EXCLUDED.accuracy_rate,
			financial_year = EXCLUDED.financial_year,
			computed_at = EXCLUDED.computed_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		stats.AccountCount, stats.VoucherCount, stats.EntryCount, stats.AccuracyRate, stats.FinancialYear, stats.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// ComputeStats derives fresh counters for the given financial year. Accuracy
// is the percentage of the year's vouchers whose totals agree within the
// balance tolerance; no vouchers counts as 100.
func (r *statsRepository) ComputeStats(ctx context.Context, financialYear string, now time.Time) (*domain.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM accounts WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM vouchers WHERE financial_year = $1),
			(SELECT COUNT(*) FROM voucher_entries e JOIN vouchers v ON v.voucher_id = e.voucher_id WHERE v.financial_year = $1),
			(SELECT COUNT(*) FROM vouchers WHERE financial_year = $1 AND ABS(total_debit - total_credit) <= $2);
	`
	var accountCount, voucherCount, entryCount, balancedCount int
	err := r.Pool.QueryRow(ctx, query, financialYear, domain.BalanceTolerance).Scan(
		&accountCount, &voucherCount, &entryCount, &balancedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	accuracy := 100.0
	if voucherCount > 0 {
		accuracy = float64(balancedCount) / float64(voucherCount) * 100
	}

	return &domain.Stats{
		AccountCount:  accountCount,
		VoucherCount:  voucherCount,
		EntryCount:    entryCount,
		AccuracyRate:  accuracy,
		FinancialYear: financialYear,
		ComputedAt:    now,
	}, nil
}
