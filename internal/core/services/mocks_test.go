package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
)

// MockAccountRepository is a mock implementation of the AccountRepositoryFacade.
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByType(ctx context.Context, accountType string) ([]domain.Account, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, active, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// MockVoucherRepository is a mock implementation of the VoucherRepositoryFacade.
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter) ([]domain.Voucher, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher *domain.Voucher, balanceDeltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, voucher, balanceDeltas)
	return args.Error(0)
}

func (m *MockVoucherRepository) ReplaceVoucher(ctx context.Context, voucher domain.Voucher, reverseDeltas, applyDeltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, voucher, reverseDeltas, applyDeltas)
	return args.Error(0)
}

func (m *MockVoucherRepository) DeleteVoucher(ctx context.Context, voucherID string, reverseDeltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, voucherID, reverseDeltas, userID, now)
	return args.Error(0)
}

// MockFinancialYearRepository is a mock implementation of the FinancialYearRepository.
type MockFinancialYearRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialYearRepository = (*MockFinancialYearRepository)(nil)

func (m *MockFinancialYearRepository) SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) FindFinancialYearByID(ctx context.Context, yearID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) FindFinancialYearByCode(ctx context.Context, yearCode string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, yearCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) ListFinancialYears(ctx context.Context) ([]domain.FinancialYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) UpdateFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) ActivateFinancialYear(ctx context.Context, yearID string, userID string, now time.Time) error {
	args := m.Called(ctx, yearID, userID, now)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) CloseFinancialYear(ctx context.Context, yearID string, closingDate time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, yearID, closingDate, userID, now)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) DeleteFinancialYear(ctx context.Context, yearID string) error {
	args := m.Called(ctx, yearID)
	return args.Error(0)
}

// MockPendingChangeRepository is a mock implementation of the PendingChangeRepository.
type MockPendingChangeRepository struct {
	mock.Mock
}

var _ portsrepo.PendingChangeRepository = (*MockPendingChangeRepository)(nil)

func (m *MockPendingChangeRepository) SavePendingChange(ctx context.Context, change domain.PendingChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockPendingChangeRepository) FindPendingChangeByID(ctx context.Context, changeID string) (*domain.PendingChange, error) {
	args := m.Called(ctx, changeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingChange), args.Error(1)
}

func (m *MockPendingChangeRepository) ListPendingChanges(ctx context.Context, status domain.ChangeStatus, limit, offset int) ([]domain.PendingChange, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingChange), args.Error(1)
}

func (m *MockPendingChangeRepository) ReviewPendingChange(ctx context.Context, changeID string, status domain.ChangeStatus, reviewerID, comments string, now time.Time) error {
	args := m.Called(ctx, changeID, status, reviewerID, comments, now)
	return args.Error(0)
}

// MockReportingRepository is a mock implementation of the ReportingRepository.
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) FindVouchersByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.Voucher, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockReportingRepository) FindVouchersByDateRange(ctx context.Context, from, to time.Time, voucherType domain.VoucherType) ([]domain.Voucher, error) {
	args := m.Called(ctx, from, to, voucherType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockReportingRepository) FindVouchersTouchingAccountType(ctx context.Context, accountType string, from, to time.Time) ([]domain.Voucher, error) {
	args := m.Called(ctx, accountType, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

// MockStatsRepository is a mock implementation of the StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

var _ portsrepo.StatsRepository = (*MockStatsRepository)(nil)

func (m *MockStatsRepository) GetStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockStatsRepository) SaveStats(ctx context.Context, stats domain.Stats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) ComputeStats(ctx context.Context, financialYear string, now time.Time) (*domain.Stats, error) {
	args := m.Called(ctx, financialYear, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// MockAccountService is a mock implementation of the AccountSvcFacade.
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// MockStatsService is a mock implementation of the StatsSvcFacade.
type MockStatsService struct {
	mock.Mock
}

var _ portssvc.StatsSvcFacade = (*MockStatsService)(nil)

func (m *MockStatsService) GetStats(ctx context.Context, force bool) (*domain.Stats, error) {
	args := m.Called(ctx, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockStatsService) RecomputeAsync(ctx context.Context) {
	m.Called(ctx)
}
