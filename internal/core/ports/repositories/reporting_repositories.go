package repositories

import (
	"context"
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// ReportingRepository serves the read-only queries behind the derived reports.
// Reports are recomputed per request; nothing here writes.
type ReportingRepository interface {
	// FindVouchersByAccount retrieves vouchers (with entries) that contain at
	// least one entry for accountID within [from, to], sorted by
	// (voucherDate, voucherNumber).
	FindVouchersByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.Voucher, error)

	// FindVouchersByDateRange retrieves vouchers (with entries) in [from, to],
	// optionally restricted to one voucher type, sorted by
	// (voucherDate, voucherNumber).
	FindVouchersByDateRange(ctx context.Context, from, to time.Time, voucherType domain.VoucherType) ([]domain.Voucher, error)

	// FindVouchersTouchingAccountType retrieves vouchers (with entries) in
	// [from, to] having at least one entry against an account of accountType.
	FindVouchersTouchingAccountType(ctx context.Context, accountType string, from, to time.Time) ([]domain.Voucher, error)
}

// StatsRepository persists and recomputes the aggregate counters snapshot.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
	SaveStats(ctx context.Context, stats domain.Stats) error

	// ComputeStats derives fresh counters for the given financial year from
	// the accounts and vouchers tables.
	ComputeStats(ctx context.Context, financialYear string, now time.Time) (*domain.Stats, error)
}
