package application

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// ErrorCategory represents the nature of an error for logging and for the
// production no-op rule
type ErrorCategory string

const (
	CategoryInvariant      ErrorCategory = "INVARIANT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryOperator       ErrorCategory = "OPERATOR"
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines the error category
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	// Operations the driving UI should never issue
	if errors.Is(err, domain.ErrItemNotAvailable) ||
		errors.Is(err, domain.ErrItemNotInCart) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrCheckoutNotOpen) ||
		errors.Is(err, domain.ErrCheckoutAlreadyOpen) ||
		errors.Is(err, domain.ErrUnknownField) {
		return CategoryInvariant
	}

	if errors.Is(err, domain.ErrSubmissionInFlight) ||
		errors.Is(err, domain.ErrEmptyCart) {
		return CategoryBusinessRule
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput:
			return CategoryClientError
		case ErrCodeTimeout:
			return CategoryTransient
		}
		return CategoryInfrastructure
	}

	if _, ok := IsOperatorError(err); ok {
		return CategoryOperator
	}

	return CategoryInfrastructure
}

// IsInvariantViolation reports errors that signal a programming error in the
// caller rather than a user-facing condition.
func IsInvariantViolation(err error) bool {
	return CategorizeError(err) == CategoryInvariant
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrItemNotAvailable),
		errors.Is(err, domain.ErrItemNotInCart):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrSubmissionInFlight),
		errors.Is(err, domain.ErrCheckoutNotOpen),
		errors.Is(err, domain.ErrCheckoutAlreadyOpen):
		return http.StatusConflict

	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	if _, ok := IsOperatorError(err); ok {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	if opErr, ok := IsOperatorError(err); ok {
		return "OPERATOR_" + strings.ToUpper(opErr.Resposta)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return "INTERNAL_ERROR"
}
