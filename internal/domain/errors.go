package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so that sentinel values work with errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

const (
	ErrCodeItemNotAvailable    = "ITEM_NOT_AVAILABLE"
	ErrCodeItemNotInCart       = "ITEM_NOT_IN_CART"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeSubmissionInFlight  = "SUBMISSION_IN_FLIGHT"
	ErrCodeCheckoutNotOpen     = "CHECKOUT_NOT_OPEN"
	ErrCodeCheckoutAlreadyOpen = "CHECKOUT_ALREADY_OPEN"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeUnknownField        = "UNKNOWN_FIELD"
	ErrCodeInvalidCatalog      = "INVALID_CATALOG"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeAmountOverflow      = "AMOUNT_OVERFLOW"
)

var (
	ErrItemNotAvailable    = &DomainError{Code: ErrCodeItemNotAvailable, Message: "item is not in the available pool"}
	ErrItemNotInCart       = &DomainError{Code: ErrCodeItemNotInCart, Message: "item is not in the cart"}
	ErrInvalidTransition   = &DomainError{Code: ErrCodeInvalidTransition, Message: "invalid submission transition"}
	ErrSubmissionInFlight  = &DomainError{Code: ErrCodeSubmissionInFlight, Message: "a payment submission is in progress"}
	ErrCheckoutNotOpen     = &DomainError{Code: ErrCodeCheckoutNotOpen, Message: "checkout is not open"}
	ErrCheckoutAlreadyOpen = &DomainError{Code: ErrCodeCheckoutAlreadyOpen, Message: "checkout is already open"}
	ErrEmptyCart           = &DomainError{Code: ErrCodeEmptyCart, Message: "cart is empty"}
	ErrUnknownField        = &DomainError{Code: ErrCodeUnknownField, Message: "unknown payment field"}
	ErrInvalidCatalog      = &DomainError{Code: ErrCodeInvalidCatalog, Message: "invalid catalog seed"}
	ErrInvalidAmount       = &DomainError{Code: ErrCodeInvalidAmount, Message: "invalid amount"}
	ErrAmountOverflow      = &DomainError{Code: ErrCodeAmountOverflow, Message: "amount exceeds the representable range"}
)

func NewItemNotAvailableError(id ItemID) *DomainError {
	return &DomainError{
		Code:    ErrCodeItemNotAvailable,
		Message: fmt.Sprintf("item %d is not in the available pool", id),
	}
}

func NewItemNotInCartError(id ItemID) *DomainError {
	return &DomainError{
		Code:    ErrCodeItemNotInCart,
		Message: fmt.Sprintf("item %d is not in the cart", id),
	}
}

func NewInvalidTransitionError(from, to SubmissionStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewUnknownFieldError(name Field) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnknownField,
		Message: fmt.Sprintf("unknown payment field %q", name),
	}
}

func NewInvalidCatalogError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCatalog,
		Message: fmt.Sprintf("invalid catalog seed: %s", reason),
	}
}

func NewInvalidAmountError(amount int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %d", amount),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
