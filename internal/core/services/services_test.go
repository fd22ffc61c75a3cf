package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/core/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/SscSPs/contas_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const owner = "owner-1"

// MockBillNotifier is a mock type for the BillNotifier interface
type MockBillNotifier struct {
	mock.Mock
}

func (m *MockBillNotifier) NotifyBillEvent(ctx context.Context, event domain.BillEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func day(y int, m time.Month, d int) dto.Date {
	return dto.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Test Suite Setup ---

type ServicesTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	notifier *MockBillNotifier
	svc      *portssvc.ServiceContainer

	accountID string
	vendorID  string
}

func (suite *ServicesTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.notifier = new(MockBillNotifier)
	suite.notifier.On("NotifyBillEvent", mock.Anything, mock.Anything).Return(nil)

	clock := func() time.Time { return time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC) }
	suite.svc = services.NewContainer(suite.store, suite.notifier, services.ContainerConfig{
		Bills:           services.BillServiceConfig{MaxInstallments: 120},
		EvolutionMonths: 6,
	}, services.WithClock(clock), services.WithLocation(time.UTC))

	account, err := suite.svc.BankAccount.CreateBankAccount(suite.ctx, owner, dto.CreateBankAccountRequest{Name: "Checking"})
	suite.Require().NoError(err)
	suite.accountID = account.AccountID

	_, err = suite.svc.Ledger.ResetOpeningBalance(suite.ctx, owner, suite.accountID, dto.OpeningBalanceRequest{
		Amount: amount("1000"), EntryDate: day(2025, 1, 1),
	})
	suite.Require().NoError(err)

	vendor, err := suite.svc.Vendor.CreateVendor(suite.ctx, owner, dto.CreateVendorRequest{Name: "Landlord", Category: "Housing"})
	suite.Require().NoError(err)
	suite.vendorID = vendor.VendorID
}

func (suite *ServicesTestSuite) createPlan() []domain.Bill {
	bills, err := suite.svc.Bill.CreateBill(suite.ctx, owner, dto.CreateBillRequest{
		Name:             "Sofa",
		VendorID:         suite.vendorID,
		DueDate:          day(2025, 2, 20),
		Amount:           amount("300"),
		InstallmentCount: 5,
		Mode:             domain.ModeSplit,
	})
	suite.Require().NoError(err)
	return bills
}

func (suite *ServicesTestSuite) pay(billID string, interest *decimal.Decimal) (*domain.Bill, error) {
	return suite.svc.Bill.PayBill(suite.ctx, owner, billID, dto.PayBillRequest{
		PaymentMethod: domain.PaymentPix,
		BankAccountID: suite.accountID,
		Interest:      interest,
	})
}

func (suite *ServicesTestSuite) balance() decimal.Decimal {
	b, err := suite.svc.Ledger.Balance(suite.ctx, owner, suite.accountID, nil)
	suite.Require().NoError(err)
	return b
}

// --- Test Cases ---

func (suite *ServicesTestSuite) TestCreateBill_SplitPlan() {
	bills := suite.createPlan()

	suite.Require().Len(bills, 5)
	planID := bills[0].PlanID
	suite.Require().NotNil(planID)
	for i, b := range bills {
		suite.True(b.Amount.Equal(amount("60")), "installment %d amount %s", i+1, b.Amount)
		suite.Equal(i+1, b.InstallmentIndex)
		suite.Equal(5, b.InstallmentCount)
		suite.Equal(*planID, *b.PlanID)
		suite.Equal(time.Date(2025, 2+time.Month(i), 20, 0, 0, 0, 0, time.UTC), b.DueDate)
		suite.Equal(domain.BillPending, b.Status)
	}
	suite.notifier.AssertNumberOfCalls(suite.T(), "NotifyBillEvent", 5)
}

func (suite *ServicesTestSuite) TestCreateBill_UnknownVendor() {
	_, err := suite.svc.Bill.CreateBill(suite.ctx, owner, dto.CreateBillRequest{
		Name: "Gym", VendorID: "missing", DueDate: day(2025, 3, 1), Amount: amount("90"),
	})
	suite.ErrorIs(err, apperrors.ErrVendorNotFound)
	suite.notifier.AssertNotCalled(suite.T(), "NotifyBillEvent", mock.Anything, mock.Anything)
}

func (suite *ServicesTestSuite) TestPlanLifecycle() {
	bills := suite.createPlan()

	paid, err := suite.pay(bills[0].BillID, nil)
	suite.Require().NoError(err)
	suite.Equal(domain.BillPaid, paid.Status)
	suite.Require().NotNil(paid.Payment)
	suite.True(suite.balance().Equal(amount("940")))

	entries, _, err := suite.svc.Ledger.ListEntries(suite.ctx, owner, suite.accountID, dto.ListEntriesParams{Limit: 10})
	suite.Require().NoError(err)
	var outflows []domain.LedgerEntry
	for _, e := range entries {
		if e.Kind == domain.Outflow {
			outflows = append(outflows, e)
		}
	}
	suite.Require().Len(outflows, 1)
	suite.Equal(paid.Payment.LedgerEntryID, outflows[0].EntryID)
	suite.True(outflows[0].Amount.Equal(amount("60")))

	deleted, err := suite.svc.Bill.DeleteBill(suite.ctx, owner, bills[1].BillID)
	suite.Require().NoError(err)
	suite.Equal(domain.DeleteBillResult{Deleted: true, HasRemainingInstallments: true, RemainingCount: 3}, *deleted)

	result, err := suite.svc.Bill.CancelAllRemaining(suite.ctx, owner, bills[2].BillID)
	suite.Require().NoError(err)
	suite.Equal(3, result.CancelledCount)

	plan, err := suite.svc.Bill.GetPlan(suite.ctx, owner, *bills[0].PlanID)
	suite.Require().NoError(err)
	suite.Equal(domain.BillPaid, plan[0].Status)
	for _, b := range plan[1:] {
		suite.Equal(domain.BillCancelled, b.Status)
	}

	again, err := suite.svc.Bill.CancelAllRemaining(suite.ctx, owner, bills[2].BillID)
	suite.Require().NoError(err)
	suite.Zero(again.CancelledCount)
}

func (suite *ServicesTestSuite) TestPayBill_TerminalStates() {
	bills := suite.createPlan()

	_, err := suite.pay(bills[0].BillID, nil)
	suite.Require().NoError(err)
	_, err = suite.pay(bills[0].BillID, nil)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)

	_, err = suite.svc.Bill.CancelBill(suite.ctx, owner, bills[1].BillID)
	suite.Require().NoError(err)
	_, err = suite.pay(bills[1].BillID, nil)
	suite.ErrorIs(err, apperrors.ErrAlreadyCancelled)

	_, err = suite.svc.Bill.CancelBill(suite.ctx, owner, bills[0].BillID)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)

	suite.True(suite.balance().Equal(amount("940")))
}

func (suite *ServicesTestSuite) TestPayBill_Interest() {
	overdue, err := suite.svc.Bill.CreateBill(suite.ctx, owner, dto.CreateBillRequest{
		Name: "Power", VendorID: suite.vendorID, DueDate: day(2025, 2, 1), Amount: amount("100"),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.BillOverdue, overdue[0].Status)

	pending, err := suite.svc.Bill.CreateBill(suite.ctx, owner, dto.CreateBillRequest{
		Name: "Water", VendorID: suite.vendorID, DueDate: day(2025, 2, 28), Amount: amount("40"),
	})
	suite.Require().NoError(err)

	interest := amount("5.50")
	_, err = suite.pay(pending[0].BillID, &interest)
	suite.ErrorIs(err, apperrors.ErrInterestNotApplicable)

	paid, err := suite.pay(overdue[0].BillID, &interest)
	suite.Require().NoError(err)
	suite.True(paid.TotalPaid().Equal(amount("105.50")))
	suite.True(suite.balance().Equal(amount("894.50")))
}

func (suite *ServicesTestSuite) TestPayBill_UnknownAccountRollsBack() {
	bills := suite.createPlan()

	_, err := suite.svc.Bill.PayBill(suite.ctx, owner, bills[0].BillID, dto.PayBillRequest{
		PaymentMethod: domain.PaymentBoleto, BankAccountID: "missing",
	})
	suite.ErrorIs(err, apperrors.ErrBankAccountNotFound)

	bill, err := suite.svc.Bill.GetBill(suite.ctx, owner, bills[0].BillID)
	suite.Require().NoError(err)
	suite.Equal(domain.BillPending, bill.Status)
}

func (suite *ServicesTestSuite) TestPayBill_ConcurrentExactlyOnce() {
	bills, err := suite.svc.Bill.CreateBill(suite.ctx, owner, dto.CreateBillRequest{
		Name: "Internet", VendorID: suite.vendorID, DueDate: day(2025, 2, 25), Amount: amount("100"),
	})
	suite.Require().NoError(err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.pay(bills[0].BillID, nil)
			mu.Lock()
			defer mu.Unlock()
			kind, _ := apperrors.KindOf(err)
			switch {
			case err == nil:
				successes++
			case kind == apperrors.KindState:
				conflicts++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, successes)
	suite.Equal(workers-1, conflicts)
	suite.True(suite.balance().Equal(amount("900")))
}

func (suite *ServicesTestSuite) TestPayAndCancelRemaining_Concurrent() {
	bills := suite.createPlan()
	target := bills[2].BillID

	var (
		wg     sync.WaitGroup
		payErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, payErr = suite.pay(target, nil)
	}()
	go func() {
		defer wg.Done()
		_, err := suite.svc.Bill.CancelAllRemaining(suite.ctx, owner, bills[0].BillID)
		suite.NoError(err)
	}()
	wg.Wait()

	bill, err := suite.svc.Bill.GetBill(suite.ctx, owner, target)
	suite.Require().NoError(err)
	if payErr == nil {
		suite.Equal(domain.BillPaid, bill.Status)
		suite.Nil(bill.CancelledAt)
	} else {
		suite.ErrorIs(payErr, apperrors.ErrAlreadyCancelled)
		suite.Equal(domain.BillCancelled, bill.Status)
		suite.Nil(bill.Payment)
	}
}

func (suite *ServicesTestSuite) planSum(planID string) decimal.Decimal {
	plan, err := suite.svc.Bill.GetPlan(suite.ctx, owner, planID)
	suite.Require().NoError(err)
	sum := decimal.Zero
	for _, b := range plan {
		sum = sum.Add(b.Amount)
	}
	return sum
}

func (suite *ServicesTestSuite) TestUpdateBill_ApplyToRemainingKeepsPlanTotal() {
	bills := suite.createPlan()
	_, err := suite.pay(bills[0].BillID, nil)
	suite.Require().NoError(err)

	newAmount := amount("75")
	updated, err := suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[2].BillID, dto.UpdateBillRequest{
		Amount: &newAmount, ApplyToRemaining: true,
	})
	suite.Require().NoError(err)
	suite.Len(updated, 3)

	plan, err := suite.svc.Bill.GetPlan(suite.ctx, owner, *bills[0].PlanID)
	suite.Require().NoError(err)
	expected := []string{"60", "60", "75", "52.50", "52.50"}
	for i, b := range plan {
		suite.True(b.Amount.Equal(amount(expected[i])), "installment %d amount %s", i+1, b.Amount)
	}
	suite.True(suite.planSum(*bills[0].PlanID).Equal(amount("300")))

	_, err = suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[0].BillID, dto.UpdateBillRequest{Amount: &newAmount})
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
}

func (suite *ServicesTestSuite) TestUpdateBill_RemainderOnLastInstallment() {
	bills := suite.createPlan()

	newAmount := amount("100")
	_, err := suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[0].BillID, dto.UpdateBillRequest{
		Amount: &newAmount, ApplyToRemaining: true,
	})
	suite.Require().NoError(err)

	// 200 over 4 installments divides evenly; 190 over 3 does not
	newAmount = amount("10")
	_, err = suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[1].BillID, dto.UpdateBillRequest{
		Amount: &newAmount, ApplyToRemaining: true,
	})
	suite.Require().NoError(err)

	plan, err := suite.svc.Bill.GetPlan(suite.ctx, owner, *bills[0].PlanID)
	suite.Require().NoError(err)
	expected := []string{"100", "10", "63.33", "63.33", "63.34"}
	for i, b := range plan {
		suite.True(b.Amount.Equal(amount(expected[i])), "installment %d amount %s", i+1, b.Amount)
	}
	suite.True(suite.planSum(*bills[0].PlanID).Equal(amount("300")))
}

func (suite *ServicesTestSuite) TestUpdateBill_InstallmentAmountAloneRejected() {
	bills := suite.createPlan()

	newAmount := amount("10")
	_, err := suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[1].BillID, dto.UpdateBillRequest{Amount: &newAmount})
	suite.ErrorIs(err, apperrors.ErrInstallmentMismatch)

	// The last installment has nothing after it to absorb a difference
	_, err = suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[4].BillID, dto.UpdateBillRequest{
		Amount: &newAmount, ApplyToRemaining: true,
	})
	suite.ErrorIs(err, apperrors.ErrInstallmentMismatch)

	// Later installments cannot go to zero
	tooMuch := amount("299.99")
	_, err = suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[0].BillID, dto.UpdateBillRequest{
		Amount: &tooMuch, ApplyToRemaining: true,
	})
	suite.ErrorIs(err, apperrors.ErrInstallmentMismatch)

	suite.True(suite.planSum(*bills[0].PlanID).Equal(amount("300")))
}

func (suite *ServicesTestSuite) TestUpdateBill_SingleBillAmount() {
	bills, err := suite.svc.Bill.CreateBill(suite.ctx, owner, dto.CreateBillRequest{
		Name: "Gym", VendorID: suite.vendorID, DueDate: day(2025, 3, 1), Amount: amount("90"),
	})
	suite.Require().NoError(err)

	newAmount := amount("95")
	updated, err := suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[0].BillID, dto.UpdateBillRequest{Amount: &newAmount})
	suite.Require().NoError(err)
	suite.Require().Len(updated, 1)
	suite.True(updated[0].Amount.Equal(newAmount))
}

func (suite *ServicesTestSuite) TestUpdateBill_DueDateKeepsInstallmentOrder() {
	bills := suite.createPlan()

	outOfOrder := day(2025, 5, 25) // after installment 4 (2025-05-20)
	_, err := suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[2].BillID, dto.UpdateBillRequest{DueDate: &outOfOrder})
	suite.ErrorIs(err, apperrors.ErrInstallmentOutOfOrder)

	tooEarly := day(2025, 3, 1) // before installment 2 (2025-03-20)
	_, err = suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[2].BillID, dto.UpdateBillRequest{DueDate: &tooEarly})
	suite.ErrorIs(err, apperrors.ErrInstallmentOutOfOrder)

	within := day(2025, 4, 30)
	updated, err := suite.svc.Bill.UpdateBill(suite.ctx, owner, bills[2].BillID, dto.UpdateBillRequest{DueDate: &within})
	suite.Require().NoError(err)
	suite.Equal(within.Time, updated[0].DueDate)
}

func (suite *ServicesTestSuite) TestBalance_AsOf() {
	_, err := suite.svc.Ledger.Post(suite.ctx, owner, suite.accountID, dto.PostEntryRequest{
		Kind: domain.Inflow, Amount: amount("250"), EntryDate: day(2025, 2, 10),
	})
	suite.Require().NoError(err)

	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	b, err := suite.svc.Ledger.Balance(suite.ctx, owner, suite.accountID, &asOf)
	suite.Require().NoError(err)
	suite.True(b.Equal(amount("1000")))
	suite.True(suite.balance().Equal(amount("1250")))

	account, err := suite.svc.BankAccount.GetBankAccount(suite.ctx, owner, suite.accountID)
	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(amount("1250")), "cached balance follows the ledger")
}

func (suite *ServicesTestSuite) TestPostAndReverse() {
	posted, err := suite.svc.Ledger.Post(suite.ctx, owner, suite.accountID, dto.PostEntryRequest{
		Kind: domain.Inflow, Amount: amount("50"), EntryDate: day(2025, 2, 3), Memo: "Refund",
	})
	suite.Require().NoError(err)
	suite.True(suite.balance().Equal(amount("1050")))

	record, err := suite.svc.Ledger.Reverse(suite.ctx, owner, posted.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Outflow, record.Kind)
	suite.Require().NotNil(record.ReversalOf)
	suite.Equal(posted.EntryID, *record.ReversalOf)
	suite.True(suite.balance().Equal(amount("1000")))

	_, err = suite.svc.Ledger.Reverse(suite.ctx, owner, posted.EntryID)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	_, err = suite.svc.Ledger.Reverse(suite.ctx, owner, record.EntryID)
	suite.ErrorIs(err, apperrors.ErrNotReversible)
}

func (suite *ServicesTestSuite) TestReverse_BillPaymentRejected() {
	bills := suite.createPlan()
	paid, err := suite.pay(bills[0].BillID, nil)
	suite.Require().NoError(err)

	_, err = suite.svc.Ledger.Reverse(suite.ctx, owner, paid.Payment.LedgerEntryID)
	suite.ErrorIs(err, apperrors.ErrNotReversible)
}

func (suite *ServicesTestSuite) TestPost_Validation() {
	_, err := suite.svc.Ledger.Post(suite.ctx, owner, suite.accountID, dto.PostEntryRequest{
		Kind: domain.Inflow, Amount: amount("0"), EntryDate: day(2025, 2, 3),
	})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = suite.svc.Ledger.Post(suite.ctx, owner, suite.accountID, dto.PostEntryRequest{
		Kind: domain.OpeningBalance, Amount: amount("10"), EntryDate: day(2025, 2, 3),
	})
	suite.ErrorIs(err, apperrors.ErrOpeningBalanceExists)

	_, err = suite.svc.BankAccount.DeactivateBankAccount(suite.ctx, owner, suite.accountID)
	suite.Require().NoError(err)
	_, err = suite.svc.Ledger.Post(suite.ctx, owner, suite.accountID, dto.PostEntryRequest{
		Kind: domain.Inflow, Amount: amount("10"), EntryDate: day(2025, 2, 3),
	})
	suite.ErrorIs(err, apperrors.ErrAccountInactive)
}

func (suite *ServicesTestSuite) TestResetOpeningBalance_ReplacesPrevious() {
	_, err := suite.svc.Ledger.ResetOpeningBalance(suite.ctx, owner, suite.accountID, dto.OpeningBalanceRequest{
		Amount: amount("1500"), EntryDate: day(2025, 1, 1),
	})
	suite.Require().NoError(err)
	suite.True(suite.balance().Equal(amount("1500")))
}

func (suite *ServicesTestSuite) TestListEntries_PagesReturnEveryEntry() {
	// The reversal record and the new opening balance share date and creation time
	_, err := suite.svc.Ledger.ResetOpeningBalance(suite.ctx, owner, suite.accountID, dto.OpeningBalanceRequest{
		Amount: amount("1200"), EntryDate: day(2025, 2, 15),
	})
	suite.Require().NoError(err)

	all, next, err := suite.svc.Ledger.ListEntries(suite.ctx, owner, suite.accountID, dto.ListEntriesParams{Limit: 100})
	suite.Require().NoError(err)
	suite.Nil(next)
	suite.Require().Len(all, 3)

	seen := map[string]bool{}
	var token *string
	for range len(all) + 1 {
		page, nextToken, err := suite.svc.Ledger.ListEntries(suite.ctx, owner, suite.accountID, dto.ListEntriesParams{Limit: 1, NextToken: token})
		suite.Require().NoError(err)
		for _, e := range page {
			suite.False(seen[e.EntryID], "entry %s returned twice", e.EntryID)
			seen[e.EntryID] = true
		}
		if nextToken == nil {
			break
		}
		token = nextToken
	}
	suite.Len(seen, len(all))
}

func (suite *ServicesTestSuite) TestInactiveCardRejected() {
	card, err := suite.svc.Card.CreateCard(suite.ctx, owner, dto.CreateCardRequest{Name: "Gold"})
	suite.Require().NoError(err)
	_, err = suite.svc.Card.SetCardActive(suite.ctx, owner, card.CardID, false)
	suite.Require().NoError(err)
	before := suite.balance()

	_, err = suite.svc.Ledger.Post(suite.ctx, owner, suite.accountID, dto.PostEntryRequest{
		Kind: domain.Outflow, Amount: amount("25"), EntryDate: day(2025, 2, 10),
		PaymentMethod: domain.PaymentCreditCard, CardID: &card.CardID,
	})
	suite.ErrorIs(err, apperrors.ErrCardNotFound)

	bills := suite.createPlan()
	_, err = suite.svc.Bill.PayBill(suite.ctx, owner, bills[0].BillID, dto.PayBillRequest{
		PaymentMethod: domain.PaymentCreditCard, BankAccountID: suite.accountID, CardID: &card.CardID,
	})
	suite.ErrorIs(err, apperrors.ErrCardNotFound)

	bill, err := suite.svc.Bill.GetBill(suite.ctx, owner, bills[0].BillID)
	suite.Require().NoError(err)
	suite.Equal(domain.BillPending, bill.Status)
	suite.True(suite.balance().Equal(before))

	_, err = suite.svc.Card.SetCardActive(suite.ctx, owner, card.CardID, true)
	suite.Require().NoError(err)
	_, err = suite.svc.Bill.PayBill(suite.ctx, owner, bills[0].BillID, dto.PayBillRequest{
		PaymentMethod: domain.PaymentCreditCard, BankAccountID: suite.accountID, CardID: &card.CardID,
	})
	suite.NoError(err)
}

func (suite *ServicesTestSuite) TestFinancialSummary() {
	bills := suite.createPlan()
	_, err := suite.pay(bills[0].BillID, nil)
	suite.Require().NoError(err)

	summary, err := suite.svc.Reporting.FinancialSummary(suite.ctx, domain.ReportQuery{
		OwnerID: owner, Year: 2025, Month: time.February,
	})
	suite.Require().NoError(err)
	suite.Equal(1, summary.Paid.Count)
	suite.True(summary.Paid.Value.Equal(amount("60")))
	suite.Equal(1, summary.DueNextMonth.Count)
	suite.True(summary.Outflow.Equal(amount("60")))
	suite.True(summary.Inflow.IsZero(), "opening balances are not inflow")

	_, err = suite.svc.Reporting.FinancialSummary(suite.ctx, domain.ReportQuery{OwnerID: owner, Year: 2025, Month: 13})
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

// conflictStore always reports an exhausted retry budget.
type conflictStore struct{}

func (conflictStore) WithinTx(context.Context, portsrepo.UnitOfWork) error {
	return apperrors.ErrTransactionConflict
}

func (conflictStore) WithinSnapshot(context.Context, portsrepo.UnitOfWork) error {
	return apperrors.ErrTransactionConflict
}

func TestPayBill_TransactionConflictIsTransient(t *testing.T) {
	ledger := services.NewLedgerService(conflictStore{})
	svc := services.NewBillService(conflictStore{}, ledger, nil, services.BillServiceConfig{})

	_, err := svc.PayBill(context.Background(), owner, "bill-1", dto.PayBillRequest{
		PaymentMethod: domain.PaymentPix, BankAccountID: "acc-1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransient)
	assert.Equal(t, "TRANSACTION_CONFLICT", apperrors.CodeOf(err))
}

// gatedStore holds snapshot reads open until released, then fails them if
// their context was cancelled in the meantime.
type gatedStore struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) WithinSnapshot(ctx context.Context, fn portsrepo.UnitOfWork) error {
	close(g.entered)
	<-g.release
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.Store.WithinSnapshot(ctx, fn)
}

func TestReport_LoadSurvivesCallerCancellation(t *testing.T) {
	store := &gatedStore{Store: memory.NewStore(), entered: make(chan struct{}), release: make(chan struct{})}
	svc := services.NewReportingService(store, 6)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.FinancialSummary(ctx, domain.ReportQuery{OwnerID: owner, Year: 2025, Month: time.February})
		done <- err
	}()

	<-store.entered
	cancel()
	close(store.release)

	require.NoError(t, <-done)
}
