package dto

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks/books_backend/internal/core/domain"
)

// Report responses all share the shape {entries..., "summary": {...}}.

// LedgerSummary is the totals block of a ledger report.
type LedgerSummary struct {
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceType domain.BalanceSide `json:"openingBalanceType"`
	TotalDebit         decimal.Decimal    `json:"totalDebit"`
	TotalCredit        decimal.Decimal    `json:"totalCredit"`
	ClosingBalance     decimal.Decimal    `json:"closingBalance"`
	ClosingBalanceType domain.BalanceSide `json:"closingBalanceType"`
}

// LedgerReportResponse wraps the ledger lines with account info and summary.
type LedgerReportResponse struct {
	AccountID   string              `json:"accountID"`
	AccountCode string              `json:"accountCode"`
	AccountName string              `json:"accountName"`
	Entries     []domain.LedgerLine `json:"entries"`
	Summary     LedgerSummary       `json:"summary"`
}

// ToLedgerReportResponse converts the domain report, projecting signed
// balances to (magnitude, side).
func ToLedgerReportResponse(r *domain.LedgerReport) LedgerReportResponse {
	openMag, openSide := domain.MagnitudeSide(r.AccountGroup, r.OpeningBalance)
	closeMag, closeSide := domain.MagnitudeSide(r.AccountGroup, r.ClosingBalance)
	return LedgerReportResponse{
		AccountID:   r.AccountID,
		AccountCode: r.AccountCode,
		AccountName: r.AccountName,
		Entries:     r.Lines,
		Summary: LedgerSummary{
			OpeningBalance:     openMag,
			OpeningBalanceType: openSide,
			TotalDebit:         r.TotalDebit,
			TotalCredit:        r.TotalCredit,
			ClosingBalance:     closeMag,
			ClosingBalanceType: closeSide,
		},
	}
}

// TrialBalanceSummary is the totals block of a trial balance.
type TrialBalanceSummary struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balanced    bool            `json:"balanced"`
}

// TrialBalanceResponse groups rows by account group.
type TrialBalanceResponse struct {
	Groups  map[domain.AccountGroup][]domain.TrialBalanceRow `json:"groups"`
	Summary TrialBalanceSummary                              `json:"summary"`
}

// ToTrialBalanceResponse converts the domain report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	return TrialBalanceResponse{
		Groups: r.Groups,
		Summary: TrialBalanceSummary{
			TotalDebit:  r.TotalDebit,
			TotalCredit: r.TotalCredit,
			Balanced:    r.Balanced,
		},
	}
}

// DayBookSummary is the totals block of a day/journal book.
type DayBookSummary struct {
	VoucherCount int             `json:"voucherCount"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
}

// DayBookResponse lists vouchers with a grand-total summary.
type DayBookResponse struct {
	Entries []domain.DayBookVoucher `json:"entries"`
	Summary DayBookSummary          `json:"summary"`
}

// ToDayBookResponse converts the domain report.
func ToDayBookResponse(r *domain.DayBookReport) DayBookResponse {
	return DayBookResponse{
		Entries: r.Vouchers,
		Summary: DayBookSummary{
			VoucherCount: len(r.Vouchers),
			TotalDebit:   r.TotalDebit,
			TotalCredit:  r.TotalCredit,
		},
	}
}

// CashBookSummary is the totals block of a cash/bank book.
type CashBookSummary struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalReceipts  decimal.Decimal `json:"totalReceipts"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// CashBookResponse lists cash/bank legs with running totals.
type CashBookResponse struct {
	AccountType string                `json:"accountType"`
	Entries     []domain.CashBookLine `json:"entries"`
	Summary     CashBookSummary       `json:"summary"`
}

// ToCashBookResponse converts the domain report.
func ToCashBookResponse(r *domain.CashBookReport) CashBookResponse {
	return CashBookResponse{
		AccountType: r.AccountType,
		Entries:     r.Lines,
		Summary: CashBookSummary{
			OpeningBalance: r.OpeningBalance,
			TotalReceipts:  r.TotalReceipts,
			TotalPayments:  r.TotalPayments,
			ClosingBalance: r.ClosingBalance,
		},
	}
}

// ProfitLossSummary is the totals block of a P&L statement.
type ProfitLossSummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	IsProfit      bool            `json:"isProfit"`
}

// ProfitLossResponse groups income and expenses by account type.
type ProfitLossResponse struct {
	Income   []domain.PLTypeGroup `json:"income"`
	Expenses []domain.PLTypeGroup `json:"expenses"`
	Summary  ProfitLossSummary    `json:"summary"`
}

// ToProfitLossResponse converts the domain report.
func ToProfitLossResponse(r *domain.ProfitLossReport) ProfitLossResponse {
	return ProfitLossResponse{
		Income:   r.Income,
		Expenses: r.Expenses,
		Summary: ProfitLossSummary{
			TotalIncome:   r.TotalIncome,
			TotalExpenses: r.TotalExpenses,
			NetAmount:     r.NetAmount,
			IsProfit:      r.IsProfit,
		},
	}
}

// BalanceSheetSummary is the totals block of a balance sheet.
type BalanceSheetSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalCapital     decimal.Decimal `json:"totalCapital"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	TotalEquitySide  decimal.Decimal `json:"totalEquitySide"`
	Balanced         bool            `json:"balanced"`
}

// BalanceSheetResponse lists the two sides of the balance sheet.
type BalanceSheetResponse struct {
	Assets      []domain.BalanceSheetRow `json:"assets"`
	Liabilities []domain.BalanceSheetRow `json:"liabilities"`
	Capital     []domain.BalanceSheetRow `json:"capital"`
	Summary     BalanceSheetSummary      `json:"summary"`
}

// ToBalanceSheetResponse converts the domain report.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		Assets:      r.Assets,
		Liabilities: r.Liabilities,
		Capital:     r.Capital,
		Summary: BalanceSheetSummary{
			TotalAssets:      r.TotalAssets,
			TotalLiabilities: r.TotalLiabilities,
			TotalCapital:     r.TotalCapital,
			NetProfit:        r.NetProfit,
			TotalEquitySide:  r.TotalEquitySide,
			Balanced:         r.Balanced,
		},
	}
}

// ReportRangeParams are the shared query parameters of date-ranged reports.
type ReportRangeParams struct {
	FinancialYear string `form:"financialYear"`
	DateFrom      string `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        string `form:"dateTo" time_format:"2006-01-02"`
}
