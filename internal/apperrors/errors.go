package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the
// resource, e.g. a concurrent mutation of the same payment or deleting an
// account that is still referenced.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInsufficientFunds indicates a debit that would drive an account balance
// negative. Use errors.Is against this sentinel; the concrete value is an
// *InsufficientFundsError carrying the details.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvariant indicates an internal ledger invariant was violated, e.g. a
// payment whose prior state implies a balance effect but which carries no
// account reference. It signals a bug, not bad input.
var ErrInvariant = errors.New("ledger invariant violation")

// InsufficientFundsError reports a rejected debit with enough detail for the
// operator to pick a different funding account.
type InsufficientFundsError struct {
	AccountName string
	Available   decimal.Decimal
	Required    decimal.Decimal
}

// NewInsufficientFunds builds an InsufficientFundsError for the given account.
func NewInsufficientFunds(accountName string, available, required decimal.Decimal) *InsufficientFundsError {
	return &InsufficientFundsError{
		AccountName: accountName,
		Available:   available,
		Required:    required,
	}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account %q: available %s, required %s",
		e.AccountName, e.Available.StringFixed(2), e.Required.StringFixed(2))
}

// Is makes errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
