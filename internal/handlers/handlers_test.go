package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/SscSPs/contas_app/internal/handlers"
	"github.com/SscSPs/contas_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	bankAccounts  *MockBankAccountService
	ledger        *MockLedgerService
	bills         *MockBillService
	reporting     *MockReportingService
	jwtSecret     string
	ownerID       string
	authorization string
}

// generateTestToken creates a signed JWT whose subject is ownerID.
func (suite *HandlerTestSuite) generateTestToken(ownerID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "contas-test",
		Subject:   ownerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.ownerID = "owner-1"
	suite.authorization = "Bearer " + suite.generateTestToken(suite.ownerID)

	suite.bankAccounts = new(MockBankAccountService)
	suite.ledger = new(MockLedgerService)
	suite.bills = new(MockBillService)
	suite.reporting = new(MockReportingService)

	cfg := &config.Config{
		IsProduction: true,
		JWTSecret:    suite.jwtSecret,
		JWTIssuer:    "contas-test",
		CurrencyCode: "USD",
	}
	services := &portssvc.ServiceContainer{
		BankAccount: suite.bankAccounts,
		Ledger:      suite.ledger,
		Bill:        suite.bills,
		Reporting:   suite.reporting,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, nil, nil)
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", suite.authorization)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["code"]
}

func (suite *HandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.bills.AssertNotCalled(suite.T(), "ListBills", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPayBill_Success() {
	paidAt := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	bill := &domain.Bill{
		BillID: "bill-1", OwnerID: suite.ownerID, Name: "Rent", VendorID: "vendor-1",
		DueDate: paidAt, Amount: decimal.NewFromInt(60), Status: domain.BillPaid,
		InstallmentIndex: 1, InstallmentCount: 1,
		Payment: &domain.Payment{
			Method: domain.PaymentPix, BankAccountID: "acc-1", Interest: decimal.Zero,
			PaidAt: paidAt, LedgerEntryID: "entry-1",
		},
	}
	suite.bills.On("PayBill", mock.Anything, suite.ownerID, "bill-1",
		mock.MatchedBy(func(req dto.PayBillRequest) bool {
			return req.PaymentMethod == domain.PaymentPix && req.BankAccountID == "acc-1"
		}),
	).Return(bill, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bills/bill-1/pay", map[string]any{
		"paymentMethod": "PIX",
		"bankAccountID": "acc-1",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BillResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.BillPaid, resp.Status)
	suite.Require().NotNil(resp.Payment)
	suite.Equal("entry-1", resp.Payment.LedgerEntryID)
	suite.bills.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPayBill_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"already paid", fmt.Errorf("%w: bill-1", apperrors.ErrAlreadyPaid), http.StatusConflict, "ALREADY_PAID"},
		{"not found", apperrors.ErrBillNotFound, http.StatusNotFound, "BILL_NOT_FOUND"},
		{"interest on pending", apperrors.ErrInterestNotApplicable, http.StatusBadRequest, "INTEREST_NOT_APPLICABLE"},
		{"retries exhausted", fmt.Errorf("pay bill: %w", apperrors.ErrTransactionConflict), http.StatusServiceUnavailable, "TRANSACTION_CONFLICT"},
		{"internal", fmt.Errorf("connection reset"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.bills.ExpectedCalls = nil
			suite.bills.On("PayBill", mock.Anything, suite.ownerID, "bill-1", mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/bills/bill-1/pay", map[string]any{
				"paymentMethod": "PIX",
				"bankAccountID": "acc-1",
			})

			suite.Equal(tt.wantStatus, w.Code)
			suite.Equal(tt.wantCode, suite.errorCode(w))
			if tt.wantStatus == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), "connection reset")
			}
		})
	}
}

func (suite *HandlerTestSuite) TestPayBill_NegativeInterestRejectedBeforeService() {
	w := suite.do(http.MethodPost, "/api/v1/bills/bill-1/pay", map[string]any{
		"paymentMethod": "PIX",
		"bankAccountID": "acc-1",
		"interest":      "-1.00",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_AMOUNT", suite.errorCode(w))
	suite.bills.AssertNotCalled(suite.T(), "PayBill", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostEntry_RejectsThreeDecimalPlaces() {
	w := suite.do(http.MethodPost, "/api/v1/bank-accounts/acc-1/entries", map[string]any{
		"kind":      "INFLOW",
		"amount":    "10.001",
		"entryDate": "2025-02-01",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_AMOUNT", suite.errorCode(w))
	suite.ledger.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostEntry_Created() {
	entryDate := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.ledger.On("Post", mock.Anything, suite.ownerID, "acc-1",
		mock.MatchedBy(func(req dto.PostEntryRequest) bool {
			return req.Kind == domain.Inflow && req.Amount.Equal(decimal.RequireFromString("250.50")) && req.EntryDate.Equal(entryDate)
		}),
	).Return(&domain.LedgerEntry{
		EntryID: "entry-9", BankAccountID: "acc-1", Kind: domain.Inflow,
		Amount: decimal.RequireFromString("250.50"), EntryDate: entryDate,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts/acc-1/entries", map[string]any{
		"kind":      "INFLOW",
		"amount":    "250.50",
		"entryDate": "2025-02-01",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LedgerEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("entry-9", resp.EntryID)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestReverseEntry_NotReversible() {
	suite.ledger.On("Reverse", mock.Anything, suite.ownerID, "entry-1").
		Return(nil, fmt.Errorf("%w: opening balances are replaced, not reversed", apperrors.ErrNotReversible)).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledger/entries/entry-1/reverse", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("NOT_REVERSIBLE", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestBalance_AsOf() {
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.ledger.On("Balance", mock.Anything, suite.ownerID, "acc-1",
		mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(asOf) }),
	).Return(decimal.NewFromInt(1000), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/bank-accounts/acc-1/balance?asOf=2025-02-01", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(1000)))
	suite.Equal("$1,000.00", resp.Display)
	suite.Require().NotNil(resp.AsOf)
	suite.True(resp.AsOf.Equal(asOf))
}

func (suite *HandlerTestSuite) TestBalance_InvalidAsOf() {
	w := suite.do(http.MethodGet, "/api/v1/bank-accounts/acc-1/balance?asOf=01/02/2025", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "Balance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestDeleteBill_ReportsRemaining() {
	suite.bills.On("DeleteBill", mock.Anything, suite.ownerID, "bill-2").
		Return(&domain.DeleteBillResult{Deleted: true, HasRemainingInstallments: true, RemainingCount: 3}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/bills/bill-2", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.DeleteBillResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.DeleteBillResult{Deleted: true, HasRemainingInstallments: true, RemainingCount: 3}, resp)
}

func (suite *HandlerTestSuite) TestFinancialSummary() {
	want := domain.ReportQuery{OwnerID: suite.ownerID, Year: 2025, Month: time.February, AccountIDs: []string{"acc-2", "acc-1"}}
	suite.reporting.On("FinancialSummary", mock.Anything, want).Return(&domain.FinancialSummary{
		Year: 2025, Month: time.February,
		Paid:   domain.StatusTotal{Count: 1, Value: decimal.NewFromInt(60)},
		Inflow: decimal.NewFromInt(1500), Outflow: decimal.NewFromInt(60), Net: decimal.NewFromInt(1440),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/summary?year=2025&month=2&accountId=acc-2&accountId=acc-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("owner-1|2025-02|acc-1,acc-2", w.Header().Get("X-Report-Key"))
	var resp dto.FinancialSummaryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Paid.Count)
	suite.Equal("$1,440.00", resp.Display.Net)
	suite.reporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestFinancialSummary_MissingMonth() {
	w := suite.do(http.MethodGet, "/api/v1/reports/summary?year=2025", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reporting.AssertNotCalled(suite.T(), "FinancialSummary", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateBill_ReturnsInstallments() {
	planID := "plan-1"
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	installments := make([]domain.Bill, 5)
	for i := range installments {
		installments[i] = domain.Bill{
			BillID: fmt.Sprintf("bill-%d", i+1), Name: "Sofa", VendorID: "vendor-1",
			DueDate: domain.AddMonthsClamped(due, i), Amount: decimal.NewFromInt(60),
			Status: domain.BillPending, PlanID: &planID, InstallmentIndex: i + 1, InstallmentCount: 5,
		}
	}
	suite.bills.On("CreateBill", mock.Anything, suite.ownerID,
		mock.MatchedBy(func(req dto.CreateBillRequest) bool {
			return req.InstallmentCount == 5 && req.Amount.Equal(decimal.NewFromInt(300))
		}),
	).Return(installments, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bills", map[string]any{
		"name":             "Sofa",
		"vendorID":         "vendor-1",
		"dueDate":          "2025-02-10",
		"amount":           "300.00",
		"installmentCount": 5,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp []dto.BillResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 5)
	suite.Equal(5, resp[4].InstallmentIndex)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
