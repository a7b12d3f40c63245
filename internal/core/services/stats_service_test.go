package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/apperrors"
	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStatsRepository
	service  portssvc.StatsSvcFacade
	ctx      context.Context
}

func (suite *StatsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStatsRepository)
	suite.service = services.NewStatsService(suite.mockRepo, 5*time.Minute)
	suite.ctx = context.Background()
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}

func (suite *StatsServiceTestSuite) TestGetStats_FreshSnapshotServed() {
	fresh := &domain.Stats{
		AccountCount: 12,
		VoucherCount: 40,
		ComputedAt:   time.Now().Add(-time.Minute),
	}

	suite.mockRepo.On("GetStats", suite.ctx).Return(fresh, nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, false)

	suite.Require().NoError(err)
	suite.Equal(12, stats.AccountCount)
	suite.mockRepo.AssertNotCalled(suite.T(), "ComputeStats")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_StaleSnapshotRecomputed() {
	stale := &domain.Stats{ComputedAt: time.Now().Add(-time.Hour)}
	recomputed := &domain.Stats{AccountCount: 15, ComputedAt: time.Now()}

	suite.mockRepo.On("GetStats", suite.ctx).Return(stale, nil).Once()
	suite.mockRepo.On("ComputeStats", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(recomputed, nil).Once()
	suite.mockRepo.On("SaveStats", suite.ctx, *recomputed).Return(nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, false)

	suite.Require().NoError(err)
	suite.Equal(15, stats.AccountCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_NoSnapshotYet() {
	recomputed := &domain.Stats{AccountCount: 3, ComputedAt: time.Now()}

	suite.mockRepo.On("GetStats", suite.ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ComputeStats", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(recomputed, nil).Once()
	suite.mockRepo.On("SaveStats", suite.ctx, *recomputed).Return(nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, false)

	suite.Require().NoError(err)
	suite.Equal(3, stats.AccountCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_ForceSkipsSnapshot() {
	recomputed := &domain.Stats{AccountCount: 7, ComputedAt: time.Now()}

	suite.mockRepo.On("ComputeStats", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(recomputed, nil).Once()
	suite.mockRepo.On("SaveStats", suite.ctx, *recomputed).Return(nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, true)

	suite.Require().NoError(err)
	suite.Equal(7, stats.AccountCount)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetStats")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_SaveFailureTolerated() {
	recomputed := &domain.Stats{AccountCount: 5, ComputedAt: time.Now()}

	suite.mockRepo.On("ComputeStats", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(recomputed, nil).Once()
	suite.mockRepo.On("SaveStats", suite.ctx, *recomputed).Return(apperrors.ErrConflict).Once()

	stats, err := suite.service.GetStats(suite.ctx, true)

	suite.Require().NoError(err)
	suite.Equal(5, stats.AccountCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestRecomputeAsync_RunsInBackground() {
	recomputed := &domain.Stats{AccountCount: 9, ComputedAt: time.Now()}
	done := make(chan struct{})

	suite.mockRepo.On("ComputeStats", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(recomputed, nil).Once()
	suite.mockRepo.On("SaveStats", mock.Anything, *recomputed).Return(nil).Once().Run(func(mock.Arguments) {
		close(done)
	})

	suite.service.RecomputeAsync(suite.ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		suite.FailNow("recompute goroutine did not run")
	}
	suite.mockRepo.AssertExpectations(suite.T())
}
