package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestErrorHandlerSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

// handle runs an error through the sink with a trace ID in context.
func (s *ErrorHandlerTestSuite) handle(err error) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")

	CustomHTTPErrorHandler(err, c)
	return rec
}

func (s *ErrorHandlerTestSuite) TestEchoHTTPErrorKeepsStatusAndMessage() {
	rec := s.handle(echo.NewHTTPError(http.StatusNotFound, "Resource not found"))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "test-trace-id")
	s.Contains(rec.Body.String(), "Resource not found")
}

func (s *ErrorHandlerTestSuite) TestGenericErrorBecomesSystemError() {
	rec := s.handle(errors.New("pq: connection reset"))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_001")
	s.Contains(rec.Body.String(), "test-trace-id")
	// Internal detail never reaches the client
	s.NotContains(rec.Body.String(), "connection reset")
	s.Contains(rec.Header().Get("Content-Type"), "application/json")
}

func (s *ErrorHandlerTestSuite) TestMissingTraceIDFallsBackToUnknown() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	CustomHTTPErrorHandler(errors.New("test error"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "unknown")
}

func (s *ErrorHandlerTestSuite) TestCommittedResponseIsLeftAlone() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})

	CustomHTTPErrorHandler(errors.New("test error"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ok")
}

func (s *ErrorHandlerTestSuite) TestBareStatusesMapToCatalogueCodes() {
	testCases := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, "VALIDATION_001"},
		{http.StatusUnauthorized, "AUTH_002"},
		{http.StatusForbidden, "AUTH_005"},
		{http.StatusNotFound, "TRANSACTION_001"},
		{http.StatusUnprocessableEntity, "VALIDATION_001"},
		{http.StatusTooManyRequests, "SYSTEM_004"},
		{http.StatusInternalServerError, "SYSTEM_001"},
		{http.StatusServiceUnavailable, "SYSTEM_003"},
		{999, "SYSTEM_001"},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			rec := s.handle(echo.NewHTTPError(tc.status))

			s.Equal(tc.status, rec.Code)
			s.Contains(rec.Body.String(), tc.expectedCode)
		})
	}
}
