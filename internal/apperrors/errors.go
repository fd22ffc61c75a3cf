package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the caller acted on a stale view of the resource state.
var ErrConflict = errors.New("state conflict")

// ErrTransient indicates a failure that may succeed if the caller retries later.
var ErrTransient = errors.New("transient failure")

// Kind groups domain errors by how callers are expected to react to them.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindState      Kind = "STATE"
	KindNotFound   Kind = "NOT_FOUND"
	KindTransient  Kind = "TRANSIENT"
)

// Error is a named domain error. Values are compared by identity, so callers
// wrap them with fmt.Errorf("%w: ...") to add detail.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap links every domain error to the generic sentinel of its kind so that
// errors.Is(err, ErrNotFound) keeps working for callers that only care about the kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindValidation:
		return ErrValidation
	case KindState:
		return ErrConflict
	case KindNotFound:
		return ErrNotFound
	case KindTransient:
		return ErrTransient
	}
	return nil
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Validation errors: caller mistakes, never retried.
var (
	ErrInvalidAmount           = newError(KindValidation, "INVALID_AMOUNT", "amount must be positive with at most 2 decimal places")
	ErrInvalidInstallmentCount = newError(KindValidation, "INVALID_INSTALLMENT_COUNT", "installment count is out of range")
	ErrInstallmentMismatch     = newError(KindValidation, "INSTALLMENT_MISMATCH", "installments do not match the declared total or count")
	ErrInstallmentOutOfOrder   = newError(KindValidation, "INSTALLMENT_OUT_OF_ORDER", "installment due date must stay between its neighbours")
	ErrInterestNotApplicable   = newError(KindValidation, "INTEREST_NOT_APPLICABLE", "interest can only be charged on overdue bills")
	ErrInvalidPaymentMethod    = newError(KindValidation, "INVALID_PAYMENT_METHOD", "payment method is invalid")
	ErrInvalidEntryKind        = newError(KindValidation, "INVALID_ENTRY_KIND", "ledger entry kind is invalid")
	ErrInvalidInstallmentMode  = newError(KindValidation, "INVALID_INSTALLMENT_MODE", "installment mode is invalid")
	ErrInvalidPeriod           = newError(KindValidation, "INVALID_PERIOD", "report period is invalid")
	ErrAccountInactive         = newError(KindValidation, "ACCOUNT_INACTIVE", "bank account is inactive")
)

// State errors: the caller's view of bill or ledger state is stale.
var (
	ErrAlreadyPaid          = newError(KindState, "ALREADY_PAID", "bill is already paid")
	ErrAlreadyCancelled     = newError(KindState, "ALREADY_CANCELLED", "bill is already cancelled")
	ErrNotReversible        = newError(KindState, "NOT_REVERSIBLE", "ledger entry cannot be reversed directly")
	ErrAlreadyReversed      = newError(KindState, "ALREADY_REVERSED", "ledger entry is already reversed")
	ErrOpeningBalanceExists = newError(KindState, "OPENING_BALANCE_EXISTS", "bank account already has an opening balance")
)

// Not-found errors.
var (
	ErrBillNotFound        = newError(KindNotFound, "BILL_NOT_FOUND", "bill not found")
	ErrPlanNotFound        = newError(KindNotFound, "PLAN_NOT_FOUND", "installment plan not found")
	ErrAccountNotFound     = newError(KindNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	ErrBankAccountNotFound = newError(KindNotFound, "BANK_ACCOUNT_NOT_FOUND", "bank account not found")
	ErrVendorNotFound      = newError(KindNotFound, "VENDOR_NOT_FOUND", "vendor not found")
	ErrEntryNotFound       = newError(KindNotFound, "ENTRY_NOT_FOUND", "ledger entry not found")
	ErrCardNotFound        = newError(KindNotFound, "CARD_NOT_FOUND", "credit card not found")
)

// ErrTransactionConflict is surfaced after the storage layer exhausted its retries.
var ErrTransactionConflict = newError(KindTransient, "TRANSACTION_CONFLICT", "the operation conflicted with a concurrent change, please retry")

// KindOf reports the kind of the first domain error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// CodeOf returns the machine readable code of the first domain error in err's chain.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL"
}

// AppError wraps infrastructure failures with an HTTP-ish status code and a safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewNotFoundError wraps ErrNotFound with a description of the missing resource.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}
