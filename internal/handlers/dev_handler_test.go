package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type DevHandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	echo          *echo.Echo
	mockGenerator *service_mocks.MockSampleDataGeneratorInterface
	handler       *DevHandler
	userID        uuid.UUID
}

func TestDevHandlerSuite(t *testing.T) {
	suite.Run(t, new(DevHandlerTestSuite))
}

func (s *DevHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.mockGenerator = service_mocks.NewMockSampleDataGeneratorInterface(s.ctrl)
	s.handler = NewDevHandler(s.mockGenerator)
	s.userID = uuid.New()
}

func (s *DevHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DevHandlerTestSuite) newContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/seed", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *DevHandlerTestSuite) TestSeedSampleData_Success() {
	c, rec := s.newContext(`{"months": 3, "transaction_count": 200}`)

	s.mockGenerator.EXPECT().
		SeedUserData(s.userID, 3, 200).
		Return(&dto.SeedResponse{
			AccountsCreated:     2,
			CardsCreated:        2,
			TransactionsCreated: 200,
		}, nil)

	err := s.handler.SeedSampleData(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response map[string]interface{}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.NotNil(response["data"])
	s.Equal("sample data generated successfully", response["message"])
}

func (s *DevHandlerTestSuite) TestSeedSampleData_DefaultsWhenBodyEmpty() {
	c, rec := s.newContext(`{}`)

	s.mockGenerator.EXPECT().
		SeedUserData(s.userID, 0, 0).
		Return(&dto.SeedResponse{
			AccountsCreated:     2,
			CardsCreated:        2,
			TransactionsCreated: 500,
		}, nil)

	err := s.handler.SeedSampleData(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *DevHandlerTestSuite) TestSeedSampleData_MissingUserContext() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dev/seed", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.SeedSampleData(c)

	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *DevHandlerTestSuite) TestSeedSampleData_MonthsOutOfRange() {
	c, rec := s.newContext(`{"months": 100}`)

	err := s.handler.SeedSampleData(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_001", response.Error.Code)
}

func (s *DevHandlerTestSuite) TestSeedSampleData_GeneratorFailure() {
	c, rec := s.newContext(`{"months": 6}`)

	s.mockGenerator.EXPECT().
		SeedUserData(s.userID, 6, 0).
		Return(nil, errors.New("insert failed"))

	err := s.handler.SeedSampleData(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
}
