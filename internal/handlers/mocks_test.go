package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BankAccountService ---
type MockBankAccountService struct {
	mock.Mock
}

func (m *MockBankAccountService) GetBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) ListBankAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]domain.BankAccount, error) {
	args := m.Called(ctx, ownerID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) CreateBankAccount(ctx context.Context, ownerID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) DeactivateBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) ActivateBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

var _ portssvc.BankAccountSvcFacade = (*MockBankAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Balance(ctx context.Context, ownerID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, ownerID, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, ownerID, accountID, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}
func (m *MockLedgerService) Post(ctx context.Context, ownerID, accountID string, req dto.PostEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ownerID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) Reverse(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ownerID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) ResetOpeningBalance(ctx context.Context, ownerID, accountID string, req dto.OpeningBalanceRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ownerID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) PostInTx(ctx context.Context, repos portsrepo.Repositories, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, repos, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock BillService ---
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) GetBill(ctx context.Context, ownerID, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillService) ListBills(ctx context.Context, ownerID string, params dto.ListBillsParams) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillService) GetPlan(ctx context.Context, ownerID, planID string) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillService) CreateBill(ctx context.Context, ownerID string, req dto.CreateBillRequest) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillService) UpdateBill(ctx context.Context, ownerID, billID string, req dto.UpdateBillRequest) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillService) PayBill(ctx context.Context, ownerID, billID string, req dto.PayBillRequest) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillService) CancelBill(ctx context.Context, ownerID, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillService) DeleteBill(ctx context.Context, ownerID, billID string) (*domain.DeleteBillResult, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeleteBillResult), args.Error(1)
}
func (m *MockBillService) CancelAllRemaining(ctx context.Context, ownerID, billID string) (*domain.CancelRemainingResult, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancelRemainingResult), args.Error(1)
}

var _ portssvc.BillSvcFacade = (*MockBillService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) FinancialSummary(ctx context.Context, q domain.ReportQuery) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}
func (m *MockReportingService) BalanceEvolution(ctx context.Context, q domain.ReportQuery) (*domain.BalanceEvolution, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceEvolution), args.Error(1)
}
func (m *MockReportingService) CategoryBreakdown(ctx context.Context, q domain.ReportQuery) ([]domain.BreakdownRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BreakdownRow), args.Error(1)
}
func (m *MockReportingService) VendorBreakdown(ctx context.Context, q domain.ReportQuery) ([]domain.BreakdownRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BreakdownRow), args.Error(1)
}
func (m *MockReportingService) PaymentUtilization(ctx context.Context, q domain.ReportQuery) (*domain.PaymentUtilization, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentUtilization), args.Error(1)
}
func (m *MockReportingService) Dashboard(ctx context.Context, q domain.ReportQuery) (*domain.Dashboard, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}
func (m *MockReportingService) AnnualReport(ctx context.Context, ownerID string, year int, accountIDs []string) (*domain.AnnualReport, error) {
	args := m.Called(ctx, ownerID, year, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnualReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
