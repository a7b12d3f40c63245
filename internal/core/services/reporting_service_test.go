package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
	ctx               context.Context
	from              time.Time
	to                time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockAccountRepo, suite.mockReportingRepo)
	suite.ctx = context.Background()
	suite.from = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (suite *ReportingServiceTestSuite) TestLedger_RunningBalance() {
	account := &domain.Account{
		AccountID:      "acc-cash",
		AccountCode:    "CASH-001",
		AccountName:    "Cash in Hand",
		AccountGroup:   domain.GroupAssets,
		OpeningBalance: decimal.NewFromInt(1000),
	}
	vouchers := []domain.Voucher{
		{
			VoucherID:     "v-1",
			VoucherNumber: "REC/2025-26/0001",
			VoucherType:   domain.VoucherReceipt,
			VoucherDate:   time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			Entries: []domain.VoucherEntry{
				{AccountID: "acc-cash", AccountName: "Cash in Hand", Debit: decimal.NewFromInt(500)},
				{AccountID: "acc-sales", AccountName: "Sales", Credit: decimal.NewFromInt(500)},
			},
		},
		{
			VoucherID:     "v-2",
			VoucherNumber: "PAY/2025-26/0001",
			VoucherType:   domain.VoucherPayment,
			VoucherDate:   time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC),
			Entries: []domain.VoucherEntry{
				{AccountID: "acc-rent", AccountName: "Rent", Debit: decimal.NewFromInt(200)},
				{AccountID: "acc-cash", AccountName: "Cash in Hand", Credit: decimal.NewFromInt(200)},
			},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-cash").Return(account, nil).Once()
	suite.mockReportingRepo.On("FindVouchersByAccount", suite.ctx, "acc-cash", suite.from, suite.to).Return(vouchers, nil).Once()

	report, err := suite.service.Ledger(suite.ctx, "acc-cash", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Lines, 2)
	suite.Equal("Sales", report.Lines[0].Particulars)
	suite.True(report.Lines[0].RunningBalance.Equal(decimal.NewFromInt(1500)))
	suite.Equal(domain.Debit, report.Lines[0].BalanceSide)
	suite.Equal("Rent", report.Lines[1].Particulars)
	suite.True(report.Lines[1].RunningBalance.Equal(decimal.NewFromInt(1300)))
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(200)))
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(1300)))
	suite.Equal(domain.Debit, report.ClosingSide)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ColumnsAndTotals() {
	active := true
	accounts := []domain.Account{
		{AccountID: "a1", AccountCode: "CASH-001", AccountGroup: domain.GroupAssets, Balance: decimal.NewFromInt(700)},
		{AccountID: "a2", AccountCode: "SAL-001", AccountGroup: domain.GroupIncome, Balance: decimal.NewFromInt(500)},
		{AccountID: "a3", AccountCode: "CAP-001", AccountGroup: domain.GroupCapital, Balance: decimal.NewFromInt(400)},
		{AccountID: "a4", AccountCode: "RENT-001", AccountGroup: domain.GroupExpenses, Balance: decimal.NewFromInt(200)},
	}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx, mock.MatchedBy(func(f portsrepo.ListAccountsFilter) bool {
		return f.IsActive != nil && *f.IsActive == active
	})).Return(accounts, nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx)

	suite.Require().NoError(err)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(900)))
	suite.True(report.Balanced)
	suite.Len(report.Groups[domain.GroupAssets], 1)
	suite.True(report.Groups[domain.GroupAssets][0].Debit.Equal(decimal.NewFromInt(700)))
	suite.True(report.Groups[domain.GroupIncome][0].Credit.Equal(decimal.NewFromInt(500)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_FlippedBalanceSwitchesColumn() {
	// An overdrawn asset reports in the credit column.
	accounts := []domain.Account{
		{AccountID: "a1", AccountCode: "BANK-001", AccountGroup: domain.GroupAssets, Balance: decimal.NewFromInt(-300)},
	}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx, mock.AnythingOfType("repositories.ListAccountsFilter")).Return(accounts, nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx)

	suite.Require().NoError(err)
	row := report.Groups[domain.GroupAssets][0]
	suite.True(row.Debit.IsZero())
	suite.True(row.Credit.Equal(decimal.NewFromInt(300)))
	suite.False(report.Balanced)
}

func (suite *ReportingServiceTestSuite) TestDayBook_Totals() {
	vouchers := []domain.Voucher{
		{VoucherID: "v-1", TotalDebit: decimal.NewFromInt(500), TotalCredit: decimal.NewFromInt(500)},
		{VoucherID: "v-2", TotalDebit: decimal.NewFromInt(200), TotalCredit: decimal.NewFromInt(200)},
	}

	suite.mockReportingRepo.On("FindVouchersByDateRange", suite.ctx, suite.from, suite.to, domain.VoucherType("")).Return(vouchers, nil).Once()

	report, err := suite.service.DayBook(suite.ctx, suite.from, suite.to, "")

	suite.Require().NoError(err)
	suite.Len(report.Vouchers, 2)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(700)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(700)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashBook_OpeningAndClosing() {
	cashAccounts := []domain.Account{
		{AccountID: "acc-cash", AccountName: "Cash in Hand", AccountType: domain.AccountTypeCash, AccountGroup: domain.GroupAssets, OpeningBalance: decimal.NewFromInt(1000)},
		{AccountID: "acc-petty", AccountName: "Petty Cash", AccountType: domain.AccountTypeCash, AccountGroup: domain.GroupAssets, OpeningBalance: decimal.NewFromInt(100)},
	}
	vouchers := []domain.Voucher{
		{
			VoucherID:   "v-1",
			VoucherType: domain.VoucherReceipt,
			Entries: []domain.VoucherEntry{
				{AccountID: "acc-cash", AccountName: "Cash in Hand", Debit: decimal.NewFromInt(400)},
				{AccountID: "acc-sales", AccountName: "Sales", Credit: decimal.NewFromInt(400)},
			},
		},
		{
			VoucherID:   "v-2",
			VoucherType: domain.VoucherPayment,
			Entries: []domain.VoucherEntry{
				{AccountID: "acc-rent", AccountName: "Rent", Debit: decimal.NewFromInt(150)},
				{AccountID: "acc-petty", AccountName: "Petty Cash", Credit: decimal.NewFromInt(150)},
			},
		},
	}

	suite.mockAccountRepo.On("ListAccountsByType", suite.ctx, domain.AccountTypeCash).Return(cashAccounts, nil).Once()
	suite.mockReportingRepo.On("FindVouchersTouchingAccountType", suite.ctx, domain.AccountTypeCash, suite.from, suite.to).Return(vouchers, nil).Once()

	report, err := suite.service.CashBook(suite.ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.NewFromInt(1100)))
	suite.Require().Len(report.Lines, 2)
	suite.Equal("Sales", report.Lines[0].Particulars)
	suite.Equal("Rent", report.Lines[1].Particulars)
	suite.True(report.TotalReceipts.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalPayments.Equal(decimal.NewFromInt(150)))
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(1350)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitLoss_NetProfit() {
	accounts := []domain.Account{
		{AccountID: "a1", AccountGroup: domain.GroupIncome, AccountType: "Sales Account", Balance: decimal.NewFromInt(900)},
		{AccountID: "a2", AccountGroup: domain.GroupExpenses, AccountType: "Direct Expenses", Balance: decimal.NewFromInt(300)},
		{AccountID: "a3", AccountGroup: domain.GroupExpenses, AccountType: "Indirect Expenses", Balance: decimal.NewFromInt(100)},
		{AccountID: "a4", AccountGroup: domain.GroupAssets, AccountType: "Cash", Balance: decimal.NewFromInt(500)},
	}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx, mock.AnythingOfType("repositories.ListAccountsFilter")).Return(accounts, nil).Once()

	report, err := suite.service.ProfitLoss(suite.ctx)

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(400)))
	suite.True(report.NetAmount.Equal(decimal.NewFromInt(500)))
	suite.True(report.IsProfit)
	suite.Len(report.Expenses, 2)
	suite.Equal("Direct Expenses", report.Expenses[0].AccountType)
	suite.True(report.Expenses[0].Subtotal.Equal(decimal.NewFromInt(300)))
}

func (suite *ReportingServiceTestSuite) TestProfitLoss_NetLoss() {
	accounts := []domain.Account{
		{AccountID: "a1", AccountGroup: domain.GroupIncome, AccountType: "Sales Account", Balance: decimal.NewFromInt(100)},
		{AccountID: "a2", AccountGroup: domain.GroupExpenses, AccountType: "Direct Expenses", Balance: decimal.NewFromInt(250)},
	}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx, mock.AnythingOfType("repositories.ListAccountsFilter")).Return(accounts, nil).Once()

	report, err := suite.service.ProfitLoss(suite.ctx)

	suite.Require().NoError(err)
	suite.True(report.NetAmount.Equal(decimal.NewFromInt(-150)))
	suite.False(report.IsProfit)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_BalancesWithNetProfit() {
	// Assets 1500 = Liabilities 200 + Capital 800 + Net Profit 500.
	accounts := []domain.Account{
		{AccountID: "a1", AccountGroup: domain.GroupAssets, AccountType: "Cash", Balance: decimal.NewFromInt(1500)},
		{AccountID: "a2", AccountGroup: domain.GroupLiabilities, AccountType: "Sundry Creditors", Balance: decimal.NewFromInt(200)},
		{AccountID: "a3", AccountGroup: domain.GroupCapital, AccountType: "Capital Account", Balance: decimal.NewFromInt(800)},
		{AccountID: "a4", AccountGroup: domain.GroupIncome, AccountType: "Sales Account", Balance: decimal.NewFromInt(900)},
		{AccountID: "a5", AccountGroup: domain.GroupExpenses, AccountType: "Direct Expenses", Balance: decimal.NewFromInt(400)},
	}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx, mock.AnythingOfType("repositories.ListAccountsFilter")).Return(accounts, nil).Twice()

	report, err := suite.service.BalanceSheet(suite.ctx)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1500)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(200)))
	suite.True(report.TotalCapital.Equal(decimal.NewFromInt(800)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalEquitySide.Equal(decimal.NewFromInt(1500)))
	suite.True(report.Balanced)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}
