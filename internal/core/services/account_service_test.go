package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portsrepo "github.com/openbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
	"github.com/openbooks/books_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	ctx      context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.ctx = context.Background()
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func validCreateAccountRequest() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		AccountCode:        "CASH-001",
		AccountName:        "Cash in Hand",
		AccountGroup:       domain.GroupAssets,
		AccountType:        "Cash",
		OpeningBalance:     decimal.NewFromInt(1000),
		OpeningBalanceType: domain.Debit,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	req := validCreateAccountRequest()

	suite.mockRepo.On("FindAccountByCode", suite.ctx, req.AccountCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("CASH-001", account.AccountCode)
	suite.True(account.IsActive)
	suite.True(account.Balance.Equal(decimal.NewFromInt(1000)))
	suite.Equal("user-1", account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditOpeningStoredNegativeForAsset() {
	req := validCreateAccountRequest()
	req.OpeningBalance = decimal.NewFromInt(250)
	req.OpeningBalanceType = domain.Credit

	suite.mockRepo.On("FindAccountByCode", suite.ctx, req.AccountCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.True(account.OpeningBalance.Equal(decimal.NewFromInt(-250)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownGroup() {
	req := validCreateAccountRequest()
	req.AccountGroup = "EQUITY"

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownGroup)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_TypeNotUnderGroup() {
	req := validCreateAccountRequest()
	req.AccountType = "Sales Account"

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidType)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningBalance() {
	req := validCreateAccountRequest()
	req.OpeningBalance = decimal.NewFromInt(-10)

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeOpening)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CodeTaken() {
	req := validCreateAccountRequest()
	existing := &domain.Account{AccountID: "other", AccountCode: req.AccountCode}

	suite.mockRepo.On("FindAccountByCode", suite.ctx, req.AccountCode).Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountCodeTaken)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateRace() {
	req := validCreateAccountRequest()

	suite.mockRepo.On("FindAccountByCode", suite.ctx, req.AccountCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountCodeTaken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(suite.ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CodeCollision() {
	accountID := "acc-1"
	newCode := "BANK-002"
	current := &domain.Account{AccountID: accountID, AccountCode: "CASH-001", AccountGroup: domain.GroupAssets}
	other := &domain.Account{AccountID: "acc-2", AccountCode: newCode}

	suite.mockRepo.On("FindAccountByID", suite.ctx, accountID).Return(current, nil).Once()
	suite.mockRepo.On("FindAccountByCode", suite.ctx, newCode).Return(other, nil).Once()

	_, err := suite.service.UpdateAccount(suite.ctx, accountID, dto.UpdateAccountRequest{AccountCode: &newCode}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountCodeTaken)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChangesSkipsWrite() {
	accountID := "acc-1"
	current := &domain.Account{AccountID: accountID, AccountCode: "CASH-001", AccountGroup: domain.GroupAssets}

	suite.mockRepo.On("FindAccountByID", suite.ctx, accountID).Return(current, nil).Once()

	account, err := suite.service.UpdateAccount(suite.ctx, accountID, dto.UpdateAccountRequest{}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("CASH-001", account.AccountCode)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeChangeValidatedAgainstGroup() {
	accountID := "acc-1"
	badType := "Direct Income"
	current := &domain.Account{AccountID: accountID, AccountCode: "CASH-001", AccountGroup: domain.GroupAssets}

	suite.mockRepo.On("FindAccountByID", suite.ctx, accountID).Return(current, nil).Once()

	_, err := suite.service.UpdateAccount(suite.ctx, accountID, dto.UpdateAccountRequest{AccountType: &badType}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	accountID := "acc-1"
	current := &domain.Account{AccountID: accountID, IsActive: true}

	suite.mockRepo.On("FindAccountByID", suite.ctx, accountID).Return(current, nil).Once()
	suite.mockRepo.On("SetAccountActive", suite.ctx, accountID, false, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, accountID, "user-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	suite.mockRepo.On("FindAccountByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(suite.ctx, "missing", "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetAccountActive")
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultLimit() {
	suite.mockRepo.On("ListAccounts", suite.ctx, mock.MatchedBy(func(f portsrepo.ListAccountsFilter) bool {
		return f.Limit == 50
	})).Return([]domain.Account{}, nil).Once()

	_, err := suite.service.ListAccounts(suite.ctx, portsrepo.ListAccountsFilter{})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	suite.mockRepo.On("ListAccounts", suite.ctx, mock.AnythingOfType("repositories.ListAccountsFilter")).Return(nil, errors.New("db down")).Once()

	_, err := suite.service.ListAccounts(suite.ctx, portsrepo.ListAccountsFilter{Limit: 10})

	suite.Require().Error(err)
	suite.mockRepo.AssertExpectations(suite.T())
}
