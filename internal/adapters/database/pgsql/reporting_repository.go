package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
)

// reportingRepository serves the read-only voucher queries behind the derived
// reports.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// queryVouchers runs a voucher header query and attaches entries.
func (r *reportingRepository) queryVouchers(ctx context.Context, query string, args ...interface{}) ([]domain.Voucher, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	var ids []string
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, *voucher)
		ids = append(ids, voucher.VoucherID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	entriesByVoucher, err := loadEntriesByVoucher(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range vouchers {
		vouchers[i].Entries = entriesByVoucher[vouchers[i].VoucherID]
	}
	return vouchers, nil
}

// FindVouchersByAccount retrieves vouchers touching accountID in [from, to].
func (r *reportingRepository) FindVouchersByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.Voucher, error) {
	query := `
		SELECT ` + prefixedVoucherColumns + `
		FROM vouchers v
		WHERE v.voucher_date >= $2 AND v.voucher_date <= $3
			AND EXISTS (
				SELECT 1 FROM voucher_entries e
				WHERE e.voucher_id = v.voucher_id AND e.account_id = $1
			)
		ORDER BY v.voucher_date, v.voucher_number;
	`
	return r.queryVouchers(ctx, query, accountID, from, to)
}

// FindVouchersByDateRange retrieves vouchers in [from, to], optionally
// restricted to one voucher type.
func (r *reportingRepository) FindVouchersByDateRange(ctx context.Context, from, to time.Time, voucherType domain.VoucherType) ([]domain.Voucher, error) {
	query := `
		SELECT ` + prefixedVoucherColumns + `
		FROM vouchers v
		WHERE v.voucher_date >= $1 AND v.voucher_date <= $2
			AND ($3 = '' OR v.voucher_type = $3)
		ORDER BY v.voucher_date, v.voucher_number;
	`
	return r.queryVouchers(ctx, query, from, to, string(voucherType))
}

// FindVouchersTouchingAccountType retrieves vouchers in [from, to] having at
// least one entry against an account of accountType.
func (r *reportingRepository) FindVouchersTouchingAccountType(ctx context.Context, accountType string, from, to time.Time) ([]domain.Voucher, error) {
	query := `
		SELECT ` + prefixedVoucherColumns + `
		FROM vouchers v
		WHERE v.voucher_date >= $2 AND v.voucher_date <= $3
			AND EXISTS (
				SELECT 1
				FROM voucher_entries e
				JOIN accounts a ON a.account_id = e.account_id
				WHERE e.voucher_id = v.voucher_id AND a.account_type = $1
			)
		ORDER BY v.voucher_date, v.voucher_number;
	`
	return r.queryVouchers(ctx, query, accountType, from, to)
}

const prefixedVoucherColumns = `v.voucher_id, v.voucher_number, v.voucher_type, v.voucher_date, v.financial_year, v.total_debit, v.total_credit, v.reference_number, v.cheque_number, v.cheque_date, v.narration, v.is_posted, v.is_reconciled, v.created_at, v.created_by, v.last_updated_at, v.last_updated_by`
