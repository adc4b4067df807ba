package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"transaction-analytics/internal/analytics"
	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/models"
	"transaction-analytics/internal/services"
	"transaction-analytics/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AnalyticsHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	echo        *echo.Echo
	mockService *service_mocks.MockAnalyticsServiceInterface
	handler     *AnalyticsHandler
	userID      uuid.UUID
}

func TestAnalyticsHandlerSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsHandlerTestSuite))
}

func (s *AnalyticsHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.mockService = service_mocks.NewMockAnalyticsServiceInterface(s.ctrl)
	s.handler = NewAnalyticsHandler(s.mockService)
	s.userID = uuid.New()
}

func (s *AnalyticsHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AnalyticsHandlerTestSuite) newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

// ========================================
// GET /api/v1/analytics Tests
// ========================================

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_Success() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=spending_trends&visualization_type=line_chart")

	expectedParams := &dto.AnalyticsParams{
		AnalyticsType:     "spending_trends",
		VisualizationType: "line_chart",
	}

	response := &dto.AnalyticsResponse{
		Title: "Spending Trends",
		Data: analytics.Payload{
			Type: analytics.VisualizationLineChart,
		},
	}

	s.mockService.EXPECT().
		GetAnalytics(s.userID, expectedParams).
		Return(response, nil)

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]interface{}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Spending Trends", body["title"])
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_ForwardsFilters() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=spending_trends&visualization_type=bar_chart" +
		"&category=Groceries&merchant=Kroger&transaction_type=debit&period=last_3_months")

	s.mockService.EXPECT().
		GetAnalytics(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
			s.Equal("Groceries", params.Filters.Category)
			s.Equal("Kroger", params.Filters.MerchantName)
			s.Equal(models.TransactionTypeDebit, params.Filters.Type)
			s.Equal("last_3_months", params.Period)
			return &dto.AnalyticsResponse{Title: "Spending Trends"}, nil
		})

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_MissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics?analytics_type=spending_trends&visualization_type=line_chart", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_MissingRequiredParameters() {
	c, rec := s.newContext("/api/v1/analytics")

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_001", response.Error.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_InvalidStartDate() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=spending_trends&visualization_type=line_chart&start_date=not-a-date")

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_InvertedDateRange() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=spending_trends&visualization_type=line_chart" +
		"&start_date=2024-06-01&end_date=2024-01-01")

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_InvalidTransactionType() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=spending_trends&visualization_type=line_chart&transaction_type=withdrawal")

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_UnknownAnalyticsType() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=fortune_telling&visualization_type=line_chart")

	s.mockService.EXPECT().
		GetAnalytics(s.userID, gomock.Any()).
		Return(nil, fmt.Errorf("%w: %q", services.ErrUnknownAnalyticsType, "fortune_telling"))

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("ANALYTICS_001", response.Error.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_UnsupportedVisualization() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=spending_trends&visualization_type=hologram")

	s.mockService.EXPECT().
		GetAnalytics(s.userID, gomock.Any()).
		Return(nil, fmt.Errorf("%w: %q", analytics.ErrUnsupportedVisualization, "hologram"))

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("ANALYTICS_002", response.Error.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_UnknownComparisonType() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=comparison_analysis&visualization_type=bar_chart&comparison_type=sideways")

	s.mockService.EXPECT().
		GetAnalytics(s.userID, gomock.Any()).
		Return(nil, fmt.Errorf("%w: %q", services.ErrUnknownComparisonType, "sideways"))

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("ANALYTICS_003", response.Error.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_UnknownDistributionVariable() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=distribution_analysis&visualization_type=pie_chart&distribution_variable=moon_phase")

	s.mockService.EXPECT().
		GetAnalytics(s.userID, gomock.Any()).
		Return(nil, fmt.Errorf("%w: %q", analytics.ErrUnknownDistributionVariable, "moon_phase"))

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("ANALYTICS_004", response.Error.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetAnalytics_ServiceFailure() {
	c, rec := s.newContext("/api/v1/analytics?analytics_type=spending_trends&visualization_type=line_chart")

	s.mockService.EXPECT().
		GetAnalytics(s.userID, gomock.Any()).
		Return(nil, errors.New("database connection lost"))

	err := s.handler.GetAnalytics(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("SYSTEM_001", response.Error.Code)
	s.NotContains(response.Error.Message, "database")
}

// ========================================
// GET /api/v1/analytics/summary Tests
// ========================================

func (s *AnalyticsHandlerTestSuite) TestGetSummary_Success() {
	c, rec := s.newContext("/api/v1/analytics/summary?category=Dining")

	summary := &analytics.Summary{
		TotalAmount:      480.25,
		AverageAmount:    96.05,
		ChangePercentage: 12.5,
		TransactionCount: 5,
	}

	s.mockService.EXPECT().
		GetSummary(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, filters models.TransactionFilters) (*analytics.Summary, error) {
			s.Equal("Dining", filters.Category)
			return summary, nil
		})

	err := s.handler.GetSummary(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.SummaryResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(480.25, response.Summary.TotalAmount)
	s.Equal(5, response.Summary.TransactionCount)
}

func (s *AnalyticsHandlerTestSuite) TestGetSummary_MissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.GetSummary(c)

	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetSummary_InvalidMinAmount() {
	c, rec := s.newContext("/api/v1/analytics/summary?min_amount=lots")

	err := s.handler.GetSummary(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AnalyticsHandlerTestSuite) TestGetSummary_ServiceFailure() {
	c, rec := s.newContext("/api/v1/analytics/summary")

	s.mockService.EXPECT().
		GetSummary(s.userID, gomock.Any()).
		Return(nil, errors.New("query timeout"))

	err := s.handler.GetSummary(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
}
