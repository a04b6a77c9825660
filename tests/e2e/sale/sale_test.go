//go:build e2e

package sale_test

import (
	"net/http"
	"testing"
	"time"

	respdto "kiosk-sales-api/internal/handler/dto/response"
	"kiosk-sales-api/tests/common/builder"
	"kiosk-sales-api/tests/common/dbtest"
	"kiosk-sales-api/tests/common/httptest"
	"kiosk-sales-api/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	salesURL         = "/sales"
	salesRegisterURL = "/sales/register"
)

type saleSuite struct {
	e2e.SharedSuite
	productID int64
}

func TestSaleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(saleSuite))
}

func (s *saleSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	t := s.T()
	kioskID := dbtest.CreateKiosk(t, s.DB, "Store1")
	s.productID = dbtest.CreateProduct(t, s.DB, kioskID, "Soda", 10)
	dbtest.CreateProduct(t, s.DB, kioskID, "Unpriced", 10)
	// An older current price must lose to the most recent one.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dbtest.CreatePrice(t, s.DB, s.productID, "1.50", true, base)
	dbtest.CreatePrice(t, s.DB, s.productID, "9.99", false, base.Add(2*time.Hour))
	dbtest.CreatePrice(t, s.DB, s.productID, "2.00", true, base.Add(time.Hour))
}

func (s *saleSuite) TestRegisterSale() {
	s.Run("priced sale returns the quote and change", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, builder.NewSaleBuilder().BuildRequest())

		var res respdto.SaleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		assert.Equal(t, "Sale registered successfully", res.Message)
		assert.Equal(t, int64(100), res.InvoiceNumber)
		assert.NotZero(t, res.ReceiptID)
		assert.InDelta(t, 4.52, res.Total, 1e-9)
		assert.InDelta(t, 5.0, res.AmountPaid, 1e-9)
		assert.InDelta(t, 0.48, res.Change, 1e-9)
		require.NotNil(t, res.ExpectedTotal)
		assert.InDelta(t, 4.52, *res.ExpectedTotal, 1e-9)
		require.NotNil(t, res.UnitPrice)
		assert.InDelta(t, 2.0, *res.UnitPrice, 1e-9)
		require.NotNil(t, res.TaxAmount)
		assert.InDelta(t, 0.52, *res.TaxAmount, 1e-9)

		assert.Equal(t, 8, dbtest.ProductStock(t, s.DB, s.productID))
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "mk_receipts"))
	})

	s.Run("register alias accepts numeric strings and a discount", func() {
		t := s.T()

		body := map[string]any{
			"productName":          " Soda ",
			"localName":            "Store1",
			"qtySold":              "2",
			"amountPaid":           4,
			"paymentMethod":        "card",
			"paymentConfirmations": "auth-77",
			"referenceNumbers":     "",
			"invoiceNumber":        "101",
			"clientCode":           "C1",
			"discountApplied":      "1",
			"userId":               1,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesRegisterURL, body)

		var res respdto.SaleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		// (4.00 - 1.00) * 1.13
		assert.InDelta(t, 3.39, res.Total, 1e-9)
		assert.InDelta(t, 0.61, res.Change, 1e-9)
		require.NotNil(t, res.Discount)
		assert.InDelta(t, 1.0, *res.Discount, 1e-9)
	})

	s.Run("unpriced product skips payment checks", func() {
		t := s.T()

		req := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.ProductName = "Unpriced"
			b.AmountPaid = "0"
		}).BuildRequest()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)

		var res respdto.SaleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		assert.Nil(t, res.ExpectedTotal)
		assert.InDelta(t, 0.0, res.Total, 1e-9)
		assert.InDelta(t, 0.0, res.Change, 1e-9)
	})

	s.Run("insufficient payment is rejected before the procedure runs", func() {
		t := s.T()

		req := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.AmountPaid = "3"
		}).BuildRequest()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)

		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Amount paid (3) is insufficient. Expected at least 4.52.")
		assert.Equal(t, 0, dbtest.CountRows(t, s.DB, "mk_receipts"))
		assert.Equal(t, 10, dbtest.ProductStock(t, s.DB, s.productID))
	})

	s.Run("negative total is rejected", func() {
		t := s.T()

		req := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.DiscountApplied = "10"
		}).BuildRequest()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)

		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Calculated total is negative")
	})

	s.Run("procedure signal surfaces as a bad request", func() {
		t := s.T()

		req := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.QtySold = "50"
			b.AmountPaid = "500"
		}).BuildRequest()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)

		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Insufficient stock")
	})

	s.Run("unknown kiosk surfaces the procedure message", func() {
		t := s.T()

		req := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.LocalName = "Nowhere"
		}).BuildRequest()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)

		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Kiosk not found")
	})

	s.Run("duplicate invoice conflicts", func() {
		t := s.T()

		req := builder.NewSaleBuilder().BuildRequest()
		first := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)
		httptest.AssertErrorResponse(t, second, http.StatusConflict, "Duplicate")
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "mk_receipts"))
	})

	s.Run("oversized numbers are rejected quickly", func() {
		t := s.T()

		req := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.QtySold = "1e100000000"
		}).BuildRequest()
		start := time.Now()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)

		resp := httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid sale payload")
		httptest.AssertIssueFields(t, resp, "qtySold")
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	s.Run("unknown fields are rejected", func() {
		t := s.T()

		body := `{"productName":"Soda","localName":"Store1","qtySold":1,"amountPaid":5,"paymentMethod":"cash",` +
			`"paymentConfirmations":"c","invoiceNumber":1,"clientCode":"C","userId":1,"extra":true}`
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, body)

		resp := httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid sale payload")
		httptest.AssertIssueFields(t, resp, "extra")
	})

	s.Run("schema violations list every field", func() {
		t := s.T()

		req := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.ProductName = ""
			b.QtySold = "0"
			b.UserID = "abc"
		}).BuildRequest()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, salesURL, req)

		resp := httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid sale payload")
		httptest.AssertIssueFields(t, resp, "productName", "qtySold", "userId")
	})
}
