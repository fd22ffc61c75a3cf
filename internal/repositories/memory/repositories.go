package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	"github.com/SscSPs/contas_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// repositories implements every repository facade over one state.
type repositories struct {
	st       *state
	writable bool
}

var (
	_ portsrepo.Repositories                = (*repositories)(nil)
	_ portsrepo.BankAccountRepositoryFacade = (*repositories)(nil)
	_ portsrepo.LedgerRepositoryFacade      = (*repositories)(nil)
	_ portsrepo.VendorRepositoryFacade      = (*repositories)(nil)
	_ portsrepo.CardRepositoryFacade        = (*repositories)(nil)
	_ portsrepo.BillRepositoryFacade        = (*repositories)(nil)
)

func (r *repositories) BankAccounts() portsrepo.BankAccountRepositoryFacade { return r }
func (r *repositories) Ledger() portsrepo.LedgerRepositoryFacade            { return r }
func (r *repositories) Vendors() portsrepo.VendorRepositoryFacade           { return r }
func (r *repositories) Cards() portsrepo.CardRepositoryFacade               { return r }
func (r *repositories) Bills() portsrepo.BillRepositoryFacade               { return r }

func (r *repositories) checkWritable() error {
	if !r.writable {
		return errReadOnly
	}
	return nil
}

// --- bank accounts ---

func (r *repositories) FindBankAccountByID(_ context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	acc, ok := r.st.accounts[accountID]
	if !ok || acc.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("bank account " + accountID)
	}
	return &acc, nil
}

func (r *repositories) FindBankAccountForUpdate(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	return r.FindBankAccountByID(ctx, ownerID, accountID)
}

func (r *repositories) ListBankAccounts(_ context.Context, ownerID string, includeInactive bool) ([]domain.BankAccount, error) {
	out := make([]domain.BankAccount, 0)
	for _, acc := range r.st.accounts {
		if acc.OwnerID == ownerID && (includeInactive || acc.IsActive) {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (r *repositories) SaveBankAccount(_ context.Context, account domain.BankAccount) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if _, exists := r.st.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: bank account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	r.st.accounts[account.AccountID] = account
	return nil
}

func (r *repositories) SetBankAccountActive(ctx context.Context, ownerID, accountID string, active bool, userID string, now time.Time) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	acc, err := r.FindBankAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	acc.IsActive = active
	acc.Touch(userID, now)
	r.st.accounts[accountID] = *acc
	return nil
}

func (r *repositories) RefreshCachedBalance(ctx context.Context, ownerID, accountID string, now time.Time) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	acc, err := r.FindBankAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	balance, err := r.SumBalance(ctx, ownerID, accountID, nil)
	if err != nil {
		return err
	}
	acc.Balance = balance
	acc.LastUpdatedAt = now
	r.st.accounts[accountID] = *acc
	return nil
}

// --- ledger ---

func (r *repositories) FindEntryByID(_ context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	e, ok := r.st.entries[entryID]
	if !ok || e.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("ledger entry " + entryID)
	}
	return &e, nil
}

func (r *repositories) FindEntryForUpdate(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	return r.FindEntryByID(ctx, ownerID, entryID)
}

func (r *repositories) FindActiveOpeningBalance(_ context.Context, ownerID, accountID string) (*domain.LedgerEntry, error) {
	for _, e := range r.st.entries {
		if e.OwnerID == ownerID && e.BankAccountID == accountID && e.Kind == domain.OpeningBalance && e.Counts() {
			return &e, nil
		}
	}
	return nil, apperrors.NewNotFoundError("opening balance of " + accountID)
}

func (r *repositories) accountEntries(ownerID, accountID string) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, 0)
	for _, e := range r.st.entries {
		if e.OwnerID == ownerID && e.BankAccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

func (r *repositories) ListEntriesByAccount(_ context.Context, ownerID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	entries := r.accountEntries(ownerID, accountID)
	sort.Slice(entries, func(i, j int) bool { return entryAfter(entries[i], entries[j]) })

	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor := domain.LedgerEntry{EntryID: c.ID, EntryDate: c.Date}
		cursor.CreatedAt = c.CreatedAt
		start := sort.Search(len(entries), func(i int) bool { return entryAfter(cursor, entries[i]) })
		entries = entries[start:]
	}

	if limit <= 0 || len(entries) <= limit {
		return entries, nil, nil
	}
	page := entries[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{Date: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.EntryID})
	return page, &token, nil
}

// entryAfter orders entries newest first by entry date, creation time, then id.
func entryAfter(a, b domain.LedgerEntry) bool {
	if !a.EntryDate.Equal(b.EntryDate) {
		return a.EntryDate.After(b.EntryDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.EntryID > b.EntryID
}

func (r *repositories) ListEntriesByOwner(_ context.Context, ownerID string, accountIDs []string) ([]domain.LedgerEntry, error) {
	allowed := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		allowed[id] = true
	}
	out := make([]domain.LedgerEntry, 0)
	for _, e := range r.st.entries {
		if e.OwnerID == ownerID && (len(allowed) == 0 || allowed[e.BankAccountID]) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return entryAfter(out[j], out[i]) })
	return out, nil
}

func (r *repositories) SumBalance(_ context.Context, ownerID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	return domain.ComputeBalance(r.accountEntries(ownerID, accountID), asOf), nil
}

func (r *repositories) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if _, exists := r.st.entries[entry.EntryID]; exists {
		return fmt.Errorf("%w: ledger entry %s", apperrors.ErrDuplicate, entry.EntryID)
	}
	if entry.Kind == domain.OpeningBalance && entry.Counts() {
		if _, err := r.FindActiveOpeningBalance(ctx, entry.OwnerID, entry.BankAccountID); err == nil {
			return fmt.Errorf("%w: opening balance of %s", apperrors.ErrDuplicate, entry.BankAccountID)
		}
	}
	r.st.entries[entry.EntryID] = entry
	return nil
}

func (r *repositories) MarkEntryReversed(ctx context.Context, ownerID, entryID, userID string, now time.Time) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	e, err := r.FindEntryByID(ctx, ownerID, entryID)
	if err != nil {
		return err
	}
	e.Reversed = true
	e.Touch(userID, now)
	r.st.entries[entryID] = *e
	return nil
}

// --- vendors ---

func (r *repositories) FindVendorByID(_ context.Context, ownerID, vendorID string) (*domain.Vendor, error) {
	v, ok := r.st.vendors[vendorID]
	if !ok || v.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("vendor " + vendorID)
	}
	return &v, nil
}

func (r *repositories) ListVendors(_ context.Context, ownerID string, includeInactive bool) ([]domain.Vendor, error) {
	out := make([]domain.Vendor, 0)
	for _, v := range r.st.vendors {
		if v.OwnerID == ownerID && (includeInactive || v.IsActive) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *repositories) SaveVendor(_ context.Context, vendor domain.Vendor) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	r.st.vendors[vendor.VendorID] = vendor
	return nil
}

func (r *repositories) SetVendorActive(ctx context.Context, ownerID, vendorID string, active bool, userID string, now time.Time) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	v, err := r.FindVendorByID(ctx, ownerID, vendorID)
	if err != nil {
		return err
	}
	v.IsActive = active
	v.Touch(userID, now)
	r.st.vendors[vendorID] = *v
	return nil
}

// --- cards ---

func (r *repositories) FindCardByID(_ context.Context, ownerID, cardID string) (*domain.CreditCard, error) {
	c, ok := r.st.cards[cardID]
	if !ok || c.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("credit card " + cardID)
	}
	return &c, nil
}

func (r *repositories) ListCards(_ context.Context, ownerID string, includeInactive bool) ([]domain.CreditCard, error) {
	out := make([]domain.CreditCard, 0)
	for _, c := range r.st.cards {
		if c.OwnerID == ownerID && (includeInactive || c.IsActive) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *repositories) SaveCard(_ context.Context, card domain.CreditCard) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	r.st.cards[card.CardID] = card
	return nil
}

func (r *repositories) SetCardActive(ctx context.Context, ownerID, cardID string, active bool, userID string, now time.Time) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	c, err := r.FindCardByID(ctx, ownerID, cardID)
	if err != nil {
		return err
	}
	c.IsActive = active
	c.Touch(userID, now)
	r.st.cards[cardID] = *c
	return nil
}

// --- bills ---

func (r *repositories) FindBillByID(_ context.Context, ownerID, billID string) (*domain.Bill, error) {
	b, ok := r.st.bills[billID]
	if !ok || b.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("bill " + billID)
	}
	b = copyBill(b)
	return &b, nil
}

func (r *repositories) FindBillForUpdate(ctx context.Context, ownerID, billID string) (*domain.Bill, error) {
	return r.FindBillByID(ctx, ownerID, billID)
}

func (r *repositories) FindBillsByPlan(_ context.Context, ownerID, planID string) ([]domain.Bill, error) {
	out := make([]domain.Bill, 0)
	for _, b := range r.st.bills {
		if b.OwnerID == ownerID && b.PlanID != nil && *b.PlanID == planID {
			out = append(out, copyBill(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstallmentIndex < out[j].InstallmentIndex })
	return out, nil
}

func (r *repositories) FindBillsByPlanForUpdate(ctx context.Context, ownerID, planID string) ([]domain.Bill, error) {
	return r.FindBillsByPlan(ctx, ownerID, planID)
}

func (r *repositories) ListBills(_ context.Context, ownerID string, filter domain.BillFilter) ([]domain.Bill, error) {
	out := make([]domain.Bill, 0)
	for _, b := range r.st.bills {
		if b.OwnerID == ownerID && matchesFilter(b, filter) {
			out = append(out, copyBill(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		if out[i].InstallmentIndex != out[j].InstallmentIndex {
			return out[i].InstallmentIndex < out[j].InstallmentIndex
		}
		return out[i].BillID < out[j].BillID
	})
	return out, nil
}

func matchesFilter(b domain.Bill, f domain.BillFilter) bool {
	if f.Year != 0 && b.DueDate.Year() != f.Year {
		return false
	}
	if f.Month != 0 && b.DueDate.Month() != f.Month {
		return false
	}
	if f.VendorID != "" && b.VendorID != f.VendorID {
		return false
	}
	if f.PlanID != "" && (b.PlanID == nil || *b.PlanID != f.PlanID) {
		return false
	}
	switch f.Status {
	case "":
	case domain.BillPending, domain.BillOverdue:
		return b.Status == domain.BillPending
	default:
		return b.Status == f.Status
	}
	return true
}

func (r *repositories) SaveBills(_ context.Context, bills []domain.Bill) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	for _, b := range bills {
		if _, exists := r.st.bills[b.BillID]; exists {
			return fmt.Errorf("%w: bill %s", apperrors.ErrDuplicate, b.BillID)
		}
	}
	for _, b := range bills {
		r.st.bills[b.BillID] = copyBill(b)
	}
	return nil
}

func (r *repositories) UpdateBill(_ context.Context, bill domain.Bill) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	existing, ok := r.st.bills[bill.BillID]
	if !ok || existing.OwnerID != bill.OwnerID {
		return apperrors.NewNotFoundError("bill " + bill.BillID)
	}
	r.st.bills[bill.BillID] = copyBill(bill)
	return nil
}
