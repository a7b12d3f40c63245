package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/books_backend/internal/core/domain"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/dto"
	"github.com/openbooks/books_backend/internal/handlers"
	"github.com/openbooks/books_backend/pkg/config"
)

// --- Mock StatsService ---
type MockStatsHandlerService struct {
	mock.Mock
}

func (m *MockStatsHandlerService) GetStats(ctx context.Context, force bool) (*domain.Stats, error) {
	args := m.Called(ctx, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockStatsHandlerService) RecomputeAsync(ctx context.Context) {
	m.Called(ctx)
}

var _ portssvc.StatsSvcFacade = (*MockStatsHandlerService)(nil)

type StatsHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockStatsService *MockStatsHandlerService
	jwtSecret        string
}

func (suite *StatsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockStatsService = new(MockStatsHandlerService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger registration
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Stats: suite.mockStatsService,
	})
}

func TestStatsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(StatsHandlerTestSuite))
}

func (suite *StatsHandlerTestSuite) statsRequest(method, path string) *httptest.ResponseRecorder {
	claims := jwt.RegisteredClaims{
		Issuer:    "books-test",
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req, err := http.NewRequest(method, path, nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+signed)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *StatsHandlerTestSuite) TestGetStats_Cached() {
	snapshot := &domain.Stats{AccountCount: 12, VoucherCount: 40, ComputedAt: time.Now()}

	suite.mockStatsService.On("GetStats", mock.Anything, false).Return(snapshot, nil).Once()

	w := suite.statsRequest(http.MethodGet, "/api/v1/stats")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StatsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(12, resp.AccountCount)
	suite.mockStatsService.AssertExpectations(suite.T())
}

func (suite *StatsHandlerTestSuite) TestRecomputeStats_ForcesRefresh() {
	snapshot := &domain.Stats{AccountCount: 9, VoucherCount: 31, ComputedAt: time.Now()}

	suite.mockStatsService.On("GetStats", mock.Anything, true).Return(snapshot, nil).Once()

	w := suite.statsRequest(http.MethodPost, "/api/v1/stats")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StatsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(9, resp.AccountCount)
	suite.mockStatsService.AssertExpectations(suite.T())
}
