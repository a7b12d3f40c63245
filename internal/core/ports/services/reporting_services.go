package services

import (
	"context"
	"time"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// ReportingSvcFacade defines the derived, read-only report projections. Every
// report is recomputed on demand from persisted accounts and vouchers.
type ReportingSvcFacade interface {
	// Ledger replays all vouchers touching one account within [from, to],
	// producing running balances from the account's opening balance.
	Ledger(ctx context.Context, accountID string, from, to time.Time) (*domain.LedgerReport, error)

	// TrialBalance places every active account's balance in the Dr or Cr
	// column, grouped by account group.
	TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error)

	// DayBook lists all vouchers in [from, to] with entry breakdowns. A
	// non-empty voucherType restricts the listing (Journal gives the
	// journal book).
	DayBook(ctx context.Context, from, to time.Time, voucherType domain.VoucherType) (*domain.DayBookReport, error)

	// CashBook covers accounts of type Cash; BankBook covers Bank Account.
	CashBook(ctx context.Context, from, to time.Time) (*domain.CashBookReport, error)
	BankBook(ctx context.Context, from, to time.Time) (*domain.CashBookReport, error)

	// ProfitLoss sums income against expense account balances.
	ProfitLoss(ctx context.Context) (*domain.ProfitLossReport, error)

	// BalanceSheet asserts Assets = Liabilities + Capital + NetProfit.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)
}
