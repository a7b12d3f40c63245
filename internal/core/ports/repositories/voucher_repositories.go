package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// ListVouchersFilter narrows a voucher listing.
type ListVouchersFilter struct {
	VoucherType   domain.VoucherType
	FinancialYear string
	AccountID     string
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}

// VoucherReader defines read operations for voucher data.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher with its entries.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves vouchers (with entries) matching the filter,
	// sorted by (voucherDate, voucherNumber) ascending.
	ListVouchers(ctx context.Context, filter ListVouchersFilter) ([]domain.Voucher, error)
}

// VoucherWriter defines the transactional write operations. Every method runs
// the voucher write and all account balance deltas in a single database
// transaction; partial effects are never visible.
type VoucherWriter interface {
	// SaveVoucher assigns the next sequence number for (type, financialYear),
	// inserts the voucher and entries, and applies balanceDeltas. The assigned
	// VoucherNumber is written back to voucher.
	SaveVoucher(ctx context.Context, voucher *domain.Voucher, balanceDeltas map[string]decimal.Decimal) error

	// ReplaceVoucher rewrites an existing voucher's header and entry set,
	// applying reverseDeltas (undoing the stored entries) and then applyDeltas
	// (the new entries) as two discrete passes.
	ReplaceVoucher(ctx context.Context, voucher domain.Voucher, reverseDeltas, applyDeltas map[string]decimal.Decimal) error

	// DeleteVoucher removes the voucher and its entries after applying
	// reverseDeltas.
	DeleteVoucher(ctx context.Context, voucherID string, reverseDeltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// VoucherRepositoryFacade combines all voucher repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
