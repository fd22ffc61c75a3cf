package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Installment is one computed slot of a plan.
type Installment struct {
	Index   int
	DueDate time.Time
	Amount  decimal.Decimal
}

// ManualInstallment is a caller supplied amount and due date.
type ManualInstallment struct {
	Amount  decimal.Decimal
	DueDate time.Time
}

// PlanRequest describes the installments to build.
type PlanRequest struct {
	Amount       decimal.Decimal
	FirstDueDate time.Time
	Count        int
	Mode         domain.InstallmentMode
	Manual       []ManualInstallment
	MaxCount     int // Zero disables the upper bound
}

// BuildInstallments expands a request into installments numbered 1..N in
// chronological order. A count of one always yields a single installment.
func BuildInstallments(req PlanRequest) ([]Installment, error) {
	if req.Count < 1 || (req.MaxCount > 0 && req.Count > req.MaxCount) {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrInvalidInstallmentCount, req.Count)
	}
	if !domain.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if req.FirstDueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", apperrors.ErrValidation)
	}
	first := domain.DateOf(req.FirstDueDate)

	if req.Count == 1 {
		return []Installment{{Index: 1, DueDate: first, Amount: req.Amount}}, nil
	}

	switch req.Mode {
	case domain.ModeSplit, "":
		return SplitEvenly(req.Amount, req.Count, first)
	case domain.ModeSameAmount:
		out := make([]Installment, req.Count)
		for i := range out {
			out[i] = Installment{Index: i + 1, DueDate: domain.AddMonthsClamped(first, i), Amount: req.Amount}
		}
		return out, nil
	case domain.ModeManual:
		return manualInstallments(req)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidInstallmentMode, req.Mode)
	}
}

// SplitEvenly divides total into count monthly installments. Each installment
// carries total/count truncated to cents and the last one absorbs the remainder,
// so the amounts always sum to total exactly.
func SplitEvenly(total decimal.Decimal, count int, first time.Time) ([]Installment, error) {
	amounts, err := Spread(total, count)
	if err != nil {
		return nil, err
	}
	out := make([]Installment, count)
	for i, amount := range amounts {
		out[i] = Installment{
			Index:   i + 1,
			DueDate: domain.AddMonthsClamped(first, i),
			Amount:  amount,
		}
	}
	return out, nil
}

// Spread divides total into count positive amounts of total/count truncated to
// cents, the last one absorbing the remainder.
func Spread(total decimal.Decimal, count int) ([]decimal.Decimal, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrInvalidInstallmentCount, count)
	}
	cents := total.Shift(domain.MoneyScale).IntPart()
	per := cents / int64(count)
	if per <= 0 {
		return nil, fmt.Errorf("%w: %s cannot be split into %d installments", apperrors.ErrInvalidAmount, total, count)
	}
	out := make([]decimal.Decimal, count)
	for i := range out {
		amount := per
		if i == count-1 {
			amount = cents - per*int64(count-1)
		}
		out[i] = decimal.New(amount, -domain.MoneyScale)
	}
	return out, nil
}

// MismatchTolerance is the largest accepted difference between the sum of manual
// installments and the declared total.
func MismatchTolerance(count int) decimal.Decimal {
	return domain.Cent.Mul(decimal.NewFromInt(int64(count)))
}

func manualInstallments(req PlanRequest) ([]Installment, error) {
	if len(req.Manual) != req.Count {
		return nil, fmt.Errorf("%w: got %d installments, expected %d", apperrors.ErrInstallmentMismatch, len(req.Manual), req.Count)
	}

	sum := decimal.Zero
	for i, m := range req.Manual {
		if !domain.ValidAmount(m.Amount) {
			return nil, fmt.Errorf("%w: installment %d amount %s", apperrors.ErrInvalidAmount, i+1, m.Amount)
		}
		if m.DueDate.IsZero() {
			return nil, fmt.Errorf("%w: installment %d is missing a due date", apperrors.ErrValidation, i+1)
		}
		sum = sum.Add(m.Amount)
	}
	if diff := sum.Sub(req.Amount).Abs(); diff.GreaterThan(MismatchTolerance(req.Count)) {
		return nil, fmt.Errorf("%w: installments sum to %s, declared total is %s", apperrors.ErrInstallmentMismatch, sum, req.Amount)
	}

	manual := make([]ManualInstallment, len(req.Manual))
	copy(manual, req.Manual)
	sort.SliceStable(manual, func(i, j int) bool { return manual[i].DueDate.Before(manual[j].DueDate) })

	out := make([]Installment, len(manual))
	for i, m := range manual {
		out[i] = Installment{Index: i + 1, DueDate: domain.DateOf(m.DueDate), Amount: m.Amount}
	}
	return out, nil
}
