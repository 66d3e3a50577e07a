package services

import "github.com/DanielPopoola/ficmart-checkout/internal/domain"

// CartView is the cart as seen by the caller.
type CartView struct {
	Lines  []domain.CartLine
	Total  domain.Money
	Locked bool
}

// CheckoutView is the open checkout surface.
type CheckoutView struct {
	Details      domain.PaymentDetails
	CardNetwork  domain.CardNetwork
	Total        domain.Money
	Quote        domain.Installment
	Status       domain.SubmissionStatus
	Reason       *domain.FailureReason
	Notification *domain.Notification
}

// SubmitResult is the outcome of one Submit call. Ignored is set when the call
// arrived while another submission was still in flight.
type SubmitResult struct {
	AttemptID    string
	Status       domain.SubmissionStatus
	Reason       *domain.FailureReason
	Notification *domain.Notification
	Ignored      bool
}
