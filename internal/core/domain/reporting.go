package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one row of an account ledger: a voucher's effect on the account
// plus the running balance after it.
type LedgerLine struct {
	VoucherID      string          `json:"voucherID"`
	VoucherNumber  string          `json:"voucherNumber"`
	VoucherType    VoucherType     `json:"voucherType"`
	VoucherDate    time.Time       `json:"voucherDate"`
	Particulars    string          `json:"particulars"`
	Narration      string          `json:"narration,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	BalanceSide    BalanceSide     `json:"balanceSide"`
}

// LedgerReport is the chronological replay of all vouchers touching one account.
type LedgerReport struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountGroup   AccountGroup    `json:"accountGroup"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	OpeningSide    BalanceSide     `json:"openingSide"`
	Lines          []LedgerLine    `json:"entries"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	ClosingSide    BalanceSide     `json:"closingSide"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
}

// TrialBalanceRow places one account's balance magnitude in the debit or
// credit column.
type TrialBalanceRow struct {
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	AccountGroup AccountGroup    `json:"accountGroup"`
	AccountType  string          `json:"accountType"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// TrialBalanceReport groups rows by account group with grand totals.
type TrialBalanceReport struct {
	Groups      map[AccountGroup][]TrialBalanceRow `json:"groups"`
	TotalDebit  decimal.Decimal                    `json:"totalDebit"`
	TotalCredit decimal.Decimal                    `json:"totalCredit"`
	Balanced    bool                               `json:"balanced"`
}

// DayBookVoucher is one voucher with its entry breakdown in a day/journal book.
type DayBookVoucher struct {
	VoucherID     string          `json:"voucherID"`
	VoucherNumber string          `json:"voucherNumber"`
	VoucherType   VoucherType     `json:"voucherType"`
	VoucherDate   time.Time       `json:"voucherDate"`
	Narration     string          `json:"narration,omitempty"`
	Entries       []VoucherEntry  `json:"entries"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
}

// DayBookReport lists vouchers in a date range with grand totals.
type DayBookReport struct {
	Vouchers    []DayBookVoucher `json:"vouchers"`
	TotalDebit  decimal.Decimal  `json:"totalDebit"`
	TotalCredit decimal.Decimal  `json:"totalCredit"`
}

// CashBookLine is one cash/bank leg of a voucher: debit is money in (receipt or
// deposit), credit is money out (payment or withdrawal).
type CashBookLine struct {
	VoucherID     string          `json:"voucherID"`
	VoucherNumber string          `json:"voucherNumber"`
	VoucherType   VoucherType     `json:"voucherType"`
	VoucherDate   time.Time       `json:"voucherDate"`
	AccountName   string          `json:"accountName"`
	Particulars   string          `json:"particulars"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// CashBookReport covers every account of one type (Cash or Bank Account).
type CashBookReport struct {
	AccountType    string          `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []CashBookLine  `json:"entries"`
	TotalReceipts  decimal.Decimal `json:"totalReceipts"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// PLTypeGroup is the per-accountType subtotal block of a P&L statement.
type PLTypeGroup struct {
	AccountType string          `json:"accountType"`
	Accounts    []PLAccountRow  `json:"accounts"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PLAccountRow is one account's contribution to income or expenses.
type PLAccountRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitLossReport is the derived P&L statement.
type ProfitLossReport struct {
	Income        []PLTypeGroup   `json:"income"`
	Expenses      []PLTypeGroup   `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	IsProfit      bool            `json:"isProfit"`
}

// BalanceSheetRow is one account line in the balance sheet.
type BalanceSheetRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetReport asserts Assets = Liabilities + Capital + NetProfit.
type BalanceSheetReport struct {
	Assets           []BalanceSheetRow `json:"assets"`
	Liabilities      []BalanceSheetRow `json:"liabilities"`
	Capital          []BalanceSheetRow `json:"capital"`
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities decimal.Decimal   `json:"totalLiabilities"`
	TotalCapital     decimal.Decimal   `json:"totalCapital"`
	NetProfit        decimal.Decimal   `json:"netProfit"`
	TotalEquitySide  decimal.Decimal   `json:"totalEquitySide"`
	Balanced         bool              `json:"balanced"`
}
