package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
	"github.com/openbooks/books_backend/internal/dto"
)

type PendingChangeServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPendingChangeRepository
	service  portssvc.PendingChangeSvcFacade
	ctx      context.Context
}

func (suite *PendingChangeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPendingChangeRepository)
	suite.service = services.NewPendingChangeService(suite.mockRepo)
	suite.ctx = context.Background()
}

func TestPendingChangeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PendingChangeServiceTestSuite))
}

func (suite *PendingChangeServiceTestSuite) TestSubmitChange_Success() {
	req := dto.SubmitChangeRequest{
		ChangeType:       "update",
		ChangeData:       json.RawMessage(`{"accountName":"Renamed"}`),
		TargetCollection: "accounts",
		TargetDocumentID: "acc-1",
	}

	suite.mockRepo.On("SavePendingChange", suite.ctx, mock.AnythingOfType("domain.PendingChange")).Return(nil).Once()

	change, err := suite.service.SubmitChange(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(change.ChangeID)
	suite.Equal(domain.ChangePending, change.Status)
	suite.Equal("user-1", change.RequestedBy)
	suite.Equal("accounts", change.TargetCollection)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PendingChangeServiceTestSuite) TestSubmitChange_InvalidJSON() {
	req := dto.SubmitChangeRequest{
		ChangeType:       "update",
		ChangeData:       json.RawMessage(`{not json`),
		TargetCollection: "accounts",
	}

	_, err := suite.service.SubmitChange(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePendingChange")
}

func pendingChange(changeID, requestedBy string) *domain.PendingChange {
	return &domain.PendingChange{
		ChangeID:         changeID,
		ChangeType:       "update",
		Status:           domain.ChangePending,
		RequestedBy:      requestedBy,
		RequestedAt:      time.Now().Add(-time.Hour),
		ChangeData:       json.RawMessage(`{}`),
		TargetCollection: "accounts",
	}
}

func (suite *PendingChangeServiceTestSuite) TestReviewChange_Approve() {
	change := pendingChange("chg-1", "user-1")

	suite.mockRepo.On("FindPendingChangeByID", suite.ctx, "chg-1").Return(change, nil).Once()
	suite.mockRepo.On("ReviewPendingChange", suite.ctx, "chg-1", domain.ChangeApproved, "user-2", "looks right", mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ReviewChange(suite.ctx, "chg-1", dto.ReviewChangeRequest{Action: "approve", Comments: "looks right"}, "user-2")

	suite.Require().NoError(err)
	suite.Equal(domain.ChangeApproved, reviewed.Status)
	suite.Equal("user-2", reviewed.ReviewedBy)
	suite.NotNil(reviewed.ReviewedAt)
	suite.Equal("looks right", reviewed.ReviewComments)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PendingChangeServiceTestSuite) TestReviewChange_Reject() {
	change := pendingChange("chg-1", "user-1")

	suite.mockRepo.On("FindPendingChangeByID", suite.ctx, "chg-1").Return(change, nil).Once()
	suite.mockRepo.On("ReviewPendingChange", suite.ctx, "chg-1", domain.ChangeRejected, "user-2", "", mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ReviewChange(suite.ctx, "chg-1", dto.ReviewChangeRequest{Action: "reject"}, "user-2")

	suite.Require().NoError(err)
	suite.Equal(domain.ChangeRejected, reviewed.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PendingChangeServiceTestSuite) TestReviewChange_OwnChange() {
	change := pendingChange("chg-1", "user-1")

	suite.mockRepo.On("FindPendingChangeByID", suite.ctx, "chg-1").Return(change, nil).Once()

	_, err := suite.service.ReviewChange(suite.ctx, "chg-1", dto.ReviewChangeRequest{Action: "approve"}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReviewPendingChange")
}

func (suite *PendingChangeServiceTestSuite) TestReviewChange_AlreadyReviewed() {
	change := pendingChange("chg-1", "user-1")
	change.Status = domain.ChangeApproved

	suite.mockRepo.On("FindPendingChangeByID", suite.ctx, "chg-1").Return(change, nil).Once()

	_, err := suite.service.ReviewChange(suite.ctx, "chg-1", dto.ReviewChangeRequest{Action: "reject"}, "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReviewPendingChange")
}

func (suite *PendingChangeServiceTestSuite) TestListChanges_DefaultLimit() {
	suite.mockRepo.On("ListPendingChanges", suite.ctx, domain.ChangePending, 50, 0).Return([]domain.PendingChange{}, nil).Once()

	_, err := suite.service.ListChanges(suite.ctx, domain.ChangePending, 0, -3)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}
