//go:build unit

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"kiosk-sales-api/internal/domain/sale"
	"kiosk-sales-api/internal/handler/api"
	resdto "kiosk-sales-api/internal/handler/dto/response"
	"kiosk-sales-api/internal/infra"
	"kiosk-sales-api/internal/pkg/errs"
	"kiosk-sales-api/internal/usecase"
	"kiosk-sales-api/tests/common/builder"
	"kiosk-sales-api/tests/common/httptest"
	"kiosk-sales-api/tests/common/testutil"
	usecasemock "kiosk-sales-api/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type SaleHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockUseCase *usecasemock.MockSaleUseCase
	handler     *api.SaleHandler
}

func (s *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockUseCase = usecasemock.NewMockSaleUseCase(s.mockCtrl)
	s.handler = api.NewSaleHandler(s.mockUseCase, discardLogger())

	s.router.POST("/sales", s.handler.Register)
	s.router.POST("/sales/register", s.handler.Register)
}

func (s *SaleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSaleHandlerSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}

func (s *SaleHandlerTestSuite) validBody(muts ...func(map[string]any)) map[string]any {
	return testutil.DtoMap(s.T(), builder.NewSaleBuilder().BuildRequest(), muts...)
}

func pricedResult() *usecase.SaleResult {
	d := decimal.RequireFromString
	quote, _ := sale.NewQuote(d("2.00"), 2, decimal.Zero)
	return &usecase.SaleResult{
		Message:       "Sale registered successfully",
		ReceiptID:     55,
		InvoiceNumber: 100,
		Total:         d("4.52"),
		AmountPaid:    d("5"),
		Change:        d("0.48"),
		Quote:         &quote,
	}
}

func (s *SaleHandlerTestSuite) TestRegister_Success() {
	for _, path := range []string{"/sales", "/sales/register"} {
		s.Run(path, func() {
			s.mockUseCase.EXPECT().RegisterSale(gomock.Any(), gomock.Any()).Return(pricedResult(), nil)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, s.validBody())

			var res resdto.SaleResponse
			httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
			s.Equal("Sale registered successfully", res.Message)
			s.Equal(int64(55), res.ReceiptID)
			s.InDelta(0.48, res.Change, 1e-9)
			s.Require().NotNil(res.ExpectedTotal)
			s.InDelta(4.52, *res.ExpectedTotal, 1e-9)
		})
	}
}

func (s *SaleHandlerTestSuite) TestRegister_NumericStringsAccepted() {
	s.mockUseCase.EXPECT().RegisterSale(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req any) (*usecase.SaleResult, error) {
			return pricedResult(), nil
		})

	body := `{"productName":"Soda","localName":"Store1","qtySold":"2","amountPaid":"5.00",
		"paymentMethod":"cash","paymentConfirmations":"c1","invoiceNumber":"100","clientCode":"C1","userId":"1"}`
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales", body)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *SaleHandlerTestSuite) TestRegister_ShapeErrors() {
	testCases := []struct {
		name        string
		body        any
		expectField string
	}{
		{name: "unknown field", body: s.validBody(testutil.Field("extra", "x")), expectField: "extra"},
		{name: "bool quantity", body: s.validBody(testutil.Field("qtySold", true)), expectField: "qtySold"},
		{name: "numeric product name", body: s.validBody(testutil.Field("productName", 12)), expectField: "productName"},
		{name: "object user id", body: s.validBody(testutil.Field("userId", map[string]any{"id": 1})), expectField: "userId"},
		{name: "malformed json", body: `{"productName":`, expectField: ""},
		{name: "empty body", body: "", expectField: ""},
		{name: "trailing data", body: `{"productName":"Soda"} {}`, expectField: ""},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales", tc.body)

			resp := httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid sale payload")
			s.Require().Len(resp.Detail, 1)
			if tc.expectField != "" {
				httptest.AssertIssueFields(s.T(), resp, tc.expectField)
			}
		})
	}
}

func (s *SaleHandlerTestSuite) TestRegister_UnsupportedContentType() {
	w := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/sales", "productName=Soda", "application/x-www-form-urlencoded", "")

	resp := httptest.AssertErrorResponse(s.T(), w, http.StatusUnsupportedMediaType, "Content-Type")
	s.Equal("UNSUPPORTED_MEDIA_TYPE", resp.Error.Code)
}

func (s *SaleHandlerTestSuite) TestRegister_ErrorMapping() {
	testCases := []struct {
		name         string
		err          error
		expectStatus int
		expectMsg    string
		expectIssues int
	}{
		{
			name:         "payload issues",
			err:          usecase.NewPayloadError("Invalid sale payload", []usecase.Issue{{Field: "qtySold", Message: "Expected integer"}}),
			expectStatus: http.StatusBadRequest,
			expectMsg:    "Invalid sale payload",
			expectIssues: 1,
		},
		{
			name:         "insufficient payment",
			err:          usecase.NewBusinessError("Amount paid (3) is insufficient. Expected at least 4.52."),
			expectStatus: http.StatusBadRequest,
			expectMsg:    "Amount paid (3) is insufficient. Expected at least 4.52.",
		},
		{
			name:         "procedure signal",
			err:          infra.WrapRepoErr(discardLogger(), "registerSale failed", &mysql.MySQLError{Number: 1644, SQLState: [5]byte{'4', '5', '0', '0', '0'}, Message: "Insufficient stock"}),
			expectStatus: http.StatusBadRequest,
			expectMsg:    "Insufficient stock",
		},
		{
			name:         "procedure signal without message",
			err:          infra.WrapRepoErr(discardLogger(), "registerSale failed", &mysql.MySQLError{Number: 1644, SQLState: [5]byte{'4', '5', '0', '0', '0'}}),
			expectStatus: http.StatusBadRequest,
			expectMsg:    "Database validation error",
		},
		{
			name:         "duplicate invoice",
			err:          infra.WrapRepoErr(discardLogger(), "registerSale failed", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '100' for key 'receiptNumber'"}),
			expectStatus: http.StatusConflict,
			expectMsg:    "Duplicate entry",
		},
		{
			name:         "explicit status",
			err:          errs.NewStatusError(http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", nil),
			expectStatus: http.StatusServiceUnavailable,
			expectMsg:    "Database unavailable",
		},
		{
			name:         "receipt missing after write",
			err:          infra.NewRepoErr(discardLogger(), infra.KindNotFound, "receipt not found", errs.ErrWriteNotConfirmed),
			expectStatus: http.StatusInternalServerError,
			expectMsg:    "Unexpected server error",
		},
		{
			name:         "driver failure",
			err:          errors.New("dial tcp: connection refused"),
			expectStatus: http.StatusInternalServerError,
			expectMsg:    "Unexpected server error",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockUseCase.EXPECT().RegisterSale(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/sales", s.validBody())

			resp := httptest.AssertErrorResponse(s.T(), w, tc.expectStatus, tc.expectMsg)
			s.Len(resp.Detail, tc.expectIssues)
			s.NotContains(w.Body.String(), "connection refused")
		})
	}
}
