package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/middleware"
)

// reportingService derives the read-only report projections by replaying
// persisted accounts and vouchers. Nothing is materialized; every call
// recomputes from storage so reports stay consistent after voucher edits.
type reportingService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(accountRepo portsrepo.AccountRepositoryFacade, reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Ledger replays every voucher touching the account within [from, to],
// producing a running balance per line starting from the opening balance.
func (s *reportingService) Ledger(ctx context.Context, accountID string, from, to time.Time) (*domain.LedgerReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	vouchers, err := s.reportingRepo.FindVouchersByAccount(ctx, accountID, from, to)
	if err != nil {
		logger.Error("Failed to fetch vouchers for ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch vouchers: %w", err)
	}

	report := &domain.LedgerReport{
		AccountID:      account.AccountID,
		AccountCode:    account.AccountCode,
		AccountName:    account.AccountName,
		AccountGroup:   account.AccountGroup,
		OpeningBalance: account.OpeningBalance,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	_, report.OpeningSide = domain.MagnitudeSide(account.AccountGroup, account.OpeningBalance)

	running := account.OpeningBalance
	for _, v := range vouchers {
		for i, e := range v.Entries {
			if e.AccountID != accountID {
				continue
			}
			running = running.Add(domain.SignedDelta(account.AccountGroup, e.Debit, e.Credit))
			mag, side := domain.MagnitudeSide(account.AccountGroup, running)
			report.Lines = append(report.Lines, domain.LedgerLine{
				VoucherID:      v.VoucherID,
				VoucherNumber:  v.VoucherNumber,
				VoucherType:    v.VoucherType,
				VoucherDate:    v.VoucherDate,
				Particulars:    domain.CounterParticulars(v.Entries, i),
				Narration:      e.Narration,
				Debit:          e.Debit,
				Credit:         e.Credit,
				RunningBalance: mag,
				BalanceSide:    side,
			})
			report.TotalDebit = report.TotalDebit.Add(e.Debit)
			report.TotalCredit = report.TotalCredit.Add(e.Credit)
		}
	}

	report.ClosingBalance = running
	_, report.ClosingSide = domain.MagnitudeSide(account.AccountGroup, running)
	return report, nil
}

// TrialBalance places every active account's balance magnitude in the debit
// or credit column per its side, grouped by account group.
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error) {
	active := true
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.ListAccountsFilter{IsActive: &active})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts for trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	report := &domain.TrialBalanceReport{
		Groups:      make(map[domain.AccountGroup][]domain.TrialBalanceRow),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, acc := range accounts {
		mag, side := domain.MagnitudeSide(acc.AccountGroup, acc.Balance)
		row := domain.TrialBalanceRow{
			AccountID:    acc.AccountID,
			AccountCode:  acc.AccountCode,
			AccountName:  acc.AccountName,
			AccountGroup: acc.AccountGroup,
			AccountType:  acc.AccountType,
			Debit:        decimal.Zero,
			Credit:       decimal.Zero,
		}
		if side == domain.Debit {
			row.Debit = mag
			report.TotalDebit = report.TotalDebit.Add(mag)
		} else {
			row.Credit = mag
			report.TotalCredit = report.TotalCredit.Add(mag)
		}
		report.Groups[acc.AccountGroup] = append(report.Groups[acc.AccountGroup], row)
	}

	report.Balanced = domain.Balanced(report.TotalDebit, report.TotalCredit)
	return report, nil
}

// DayBook lists all vouchers in [from, to] with per-voucher entry breakdowns
// and grand totals. Restricting voucherType to Journal yields the journal book.
func (s *reportingService) DayBook(ctx context.Context, from, to time.Time, voucherType domain.VoucherType) (*domain.DayBookReport, error) {
	vouchers, err := s.reportingRepo.FindVouchersByDateRange(ctx, from, to, voucherType)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch vouchers for day book", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch vouchers: %w", err)
	}

	report := &domain.DayBookReport{
		Vouchers:    make([]domain.DayBookVoucher, 0, len(vouchers)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, v := range vouchers {
		report.Vouchers = append(report.Vouchers, domain.DayBookVoucher{
			VoucherID:     v.VoucherID,
			VoucherNumber: v.VoucherNumber,
			VoucherType:   v.VoucherType,
			VoucherDate:   v.VoucherDate,
			Narration:     v.Narration,
			Entries:       v.Entries,
			TotalDebit:    v.TotalDebit,
			TotalCredit:   v.TotalCredit,
		})
		report.TotalDebit = report.TotalDebit.Add(v.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(v.TotalCredit)
	}
	return report, nil
}

// CashBook reports all vouchers touching Cash accounts.
func (s *reportingService) CashBook(ctx context.Context, from, to time.Time) (*domain.CashBookReport, error) {
	return s.bookByAccountType(ctx, domain.AccountTypeCash, from, to)
}

// BankBook reports all vouchers touching Bank Account accounts.
func (s *reportingService) BankBook(ctx context.Context, from, to time.Time) (*domain.CashBookReport, error) {
	return s.bookByAccountType(ctx, domain.AccountTypeBank, from, to)
}

// bookByAccountType builds the cash/bank book: the cash-or-bank legs of every
// voucher touching an account of accountType, with the counter legs as
// particulars. Opening balance is the sum of opening balances of all accounts
// of that type; closing = opening + receipts - payments.
func (s *reportingService) bookByAccountType(ctx context.Context, accountType string, from, to time.Time) (*domain.CashBookReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByType(ctx, accountType)
	if err != nil {
		logger.Error("Failed to list accounts for book", slog.String("error", err.Error()), slog.String("account_type", accountType))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	memberIDs := make(map[string]struct{}, len(accounts))
	opening := decimal.Zero
	for _, acc := range accounts {
		memberIDs[acc.AccountID] = struct{}{}
		opening = opening.Add(acc.OpeningBalance)
	}

	vouchers, err := s.reportingRepo.FindVouchersTouchingAccountType(ctx, accountType, from, to)
	if err != nil {
		logger.Error("Failed to fetch vouchers for book", slog.String("error", err.Error()), slog.String("account_type", accountType))
		return nil, fmt.Errorf("failed to fetch vouchers: %w", err)
	}

	report := &domain.CashBookReport{
		AccountType:    accountType,
		OpeningBalance: opening,
		TotalReceipts:  decimal.Zero,
		TotalPayments:  decimal.Zero,
	}

	for _, v := range vouchers {
		for i, e := range v.Entries {
			if _, member := memberIDs[e.AccountID]; !member {
				continue
			}
			report.Lines = append(report.Lines, domain.CashBookLine{
				VoucherID:     v.VoucherID,
				VoucherNumber: v.VoucherNumber,
				VoucherType:   v.VoucherType,
				VoucherDate:   v.VoucherDate,
				AccountName:   e.AccountName,
				Particulars:   domain.CounterParticulars(v.Entries, i),
				Debit:         e.Debit,
				Credit:        e.Credit,
			})
			report.TotalReceipts = report.TotalReceipts.Add(e.Debit)
			report.TotalPayments = report.TotalPayments.Add(e.Credit)
		}
	}

	report.ClosingBalance = opening.Add(report.TotalReceipts).Sub(report.TotalPayments)
	return report, nil
}

// ProfitLoss sums income account balances (credit-normal) against expense
// account balances (debit-normal), grouped by account type.
func (s *reportingService) ProfitLoss(ctx context.Context) (*domain.ProfitLossReport, error) {
	active := true
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.ListAccountsFilter{IsActive: &active})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts for P&L", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	report := &domain.ProfitLossReport{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	incomeByType := make(map[string][]domain.PLAccountRow)
	expenseByType := make(map[string][]domain.PLAccountRow)

	for _, acc := range accounts {
		row := domain.PLAccountRow{
			AccountID:   acc.AccountID,
			AccountCode: acc.AccountCode,
			AccountName: acc.AccountName,
			// Signed balance is already oriented toward the group's normal
			// side, so a flipped balance subtracts.
			Amount: acc.Balance,
		}
		switch acc.AccountGroup {
		case domain.GroupIncome:
			incomeByType[acc.AccountType] = append(incomeByType[acc.AccountType], row)
			report.TotalIncome = report.TotalIncome.Add(acc.Balance)
		case domain.GroupExpenses:
			expenseByType[acc.AccountType] = append(expenseByType[acc.AccountType], row)
			report.TotalExpenses = report.TotalExpenses.Add(acc.Balance)
		}
	}

	report.Income = groupPLRows(incomeByType)
	report.Expenses = groupPLRows(expenseByType)
	report.NetAmount = report.TotalIncome.Sub(report.TotalExpenses)
	report.IsProfit = report.NetAmount.Sign() >= 0
	return report, nil
}

// BalanceSheet asserts Assets = Liabilities + Capital + NetProfit, folding
// the P&L result into the credit side.
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	active := true
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.ListAccountsFilter{IsActive: &active})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts for balance sheet", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	pl, err := s.ProfitLoss(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalCapital:     decimal.Zero,
		NetProfit:        pl.NetAmount,
	}

	for _, acc := range accounts {
		row := domain.BalanceSheetRow{
			AccountID:   acc.AccountID,
			AccountCode: acc.AccountCode,
			AccountName: acc.AccountName,
			AccountType: acc.AccountType,
			Amount:      acc.Balance,
		}
		switch acc.AccountGroup {
		case domain.GroupAssets:
			report.Assets = append(report.Assets, row)
			report.TotalAssets = report.TotalAssets.Add(acc.Balance)
		case domain.GroupLiabilities:
			report.Liabilities = append(report.Liabilities, row)
			report.TotalLiabilities = report.TotalLiabilities.Add(acc.Balance)
		case domain.GroupCapital:
			report.Capital = append(report.Capital, row)
			report.TotalCapital = report.TotalCapital.Add(acc.Balance)
		}
	}

	report.TotalEquitySide = report.TotalLiabilities.Add(report.TotalCapital).Add(report.NetProfit)
	report.Balanced = domain.Balanced(report.TotalAssets, report.TotalEquitySide)
	return report, nil
}

// groupPLRows converts a type->rows map into sorted subtotal groups.
func groupPLRows(byType map[string][]domain.PLAccountRow) []domain.PLTypeGroup {
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	groups := make([]domain.PLTypeGroup, 0, len(types))
	for _, t := range types {
		subtotal := decimal.Zero
		for _, row := range byType[t] {
			subtotal = subtotal.Add(row.Amount)
		}
		groups = append(groups, domain.PLTypeGroup{
			AccountType: t,
			Accounts:    byType[t],
			Subtotal:    subtotal,
		})
	}
	return groups
}
