// Package domain encodes the catalog, the cart partition and the checkout
// submission lifecycle.
package domain

import (
	"slices"
	"time"
)

// SubmissionStatus represents where a checkout attempt is in its lifecycle
type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "IDLE"
	StatusSubmitting SubmissionStatus = "SUBMITTING"
	StatusSucceeded  SubmissionStatus = "SUCCEEDED"
	StatusFailed     SubmissionStatus = "FAILED"
)

const SuccessMessage = "Compra efetuada com sucesso!"

// FailureReason is the structured error returned by the payment operator.
type FailureReason struct {
	Resposta string
	Detalhes string
}

func (r FailureReason) String() string {
	return r.Resposta + ": " + r.Detalhes
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is the dismissible message shown after a submission resolves.
type Notification struct {
	Kind     NotificationKind
	Message  string
	RaisedAt time.Time
}

// PaymentCommand is the side effect requested when a submission starts. The
// caller sends it to the payment operator and reports back with Succeed or Fail.
type PaymentCommand struct {
	OperatorCode   string
	StoreCode      string
	CardNumber     string
	CardHolderName string
	CardNetwork    CardNetwork
	SecurityCode   string
	Amount         Money
	Installments   int
}

// Checkout is one open payment surface: the form plus its submission state.
type Checkout struct {
	form         *PaymentForm
	status       SubmissionStatus
	reason       *FailureReason
	notification *Notification
}

func NewCheckout(defaults FormDefaults) *Checkout {
	return &Checkout{
		form:   NewPaymentForm(defaults),
		status: StatusIdle,
	}
}

func (c *Checkout) Status() SubmissionStatus {
	return c.status
}

// Reason is set only while the status is StatusFailed.
func (c *Checkout) Reason() *FailureReason {
	return c.reason
}

func (c *Checkout) Notification() *Notification {
	return c.notification
}

func (c *Checkout) Details() PaymentDetails {
	return c.form.Details()
}

func (c *Checkout) InstallmentQuote(total Money) Installment {
	return c.form.InstallmentQuote(total)
}

// UpdateField edits the form. Edits are locked while a submission is in flight.
func (c *Checkout) UpdateField(name Field, value string) error {
	if c.status == StatusSubmitting {
		return ErrSubmissionInFlight
	}
	return c.form.UpdateField(name, value)
}

// BeginSubmit moves to StatusSubmitting and returns the payment command to
// issue. A call while already submitting is a no-op and reports started=false.
// A failed attempt may be resubmitted; it starts a fresh submission state.
func (c *Checkout) BeginSubmit(total Money) (cmd PaymentCommand, started bool, err error) {
	if c.status == StatusSubmitting {
		return PaymentCommand{}, false, nil
	}
	if err := c.canTransitionTo(StatusSubmitting); err != nil {
		return PaymentCommand{}, false, err
	}
	if total.IsZero() {
		return PaymentCommand{}, false, ErrEmptyCart
	}

	c.status = StatusSubmitting
	c.reason = nil
	c.notification = nil

	d := c.form.Details()
	return PaymentCommand{
		OperatorCode:   d.OperatorCode,
		StoreCode:      d.StoreCode,
		CardNumber:     d.CardNumber,
		CardHolderName: d.CardHolderName,
		CardNetwork:    d.CardNetwork(),
		SecurityCode:   d.SecurityCode,
		Amount:         total,
		Installments:   d.InstallmentCount,
	}, true, nil
}

// Succeed resolves the in-flight submission as accepted.
func (c *Checkout) Succeed(at time.Time) error {
	if err := c.transition(StatusSucceeded); err != nil {
		return err
	}
	c.notification = &Notification{Kind: NotificationSuccess, Message: SuccessMessage, RaisedAt: at}
	return nil
}

// Fail resolves the in-flight submission with the operator's reason.
func (c *Checkout) Fail(reason FailureReason, at time.Time) error {
	if err := c.transition(StatusFailed); err != nil {
		return err
	}
	c.reason = &reason
	c.notification = &Notification{Kind: NotificationError, Message: reason.String(), RaisedAt: at}
	return nil
}

// CanCancel reports whether the surface may be closed. Never while submitting.
func (c *Checkout) CanCancel() error {
	if c.status == StatusSubmitting {
		return ErrSubmissionInFlight
	}
	return nil
}

func (c *Checkout) DismissNotification() {
	c.notification = nil
}

// ExpireNotification drops a notification raised more than ttl before now.
func (c *Checkout) ExpireNotification(now time.Time, ttl time.Duration) bool {
	if c.notification == nil || now.Sub(c.notification.RaisedAt) < ttl {
		return false
	}
	c.notification = nil
	return true
}

// IsTerminal reports whether the current attempt has resolved.
func (c *Checkout) IsTerminal() bool {
	return c.status == StatusSucceeded || c.status == StatusFailed
}

func (c *Checkout) transition(target SubmissionStatus) error {
	if err := c.canTransitionTo(target); err != nil {
		return err
	}
	c.status = target
	return nil
}

func (c *Checkout) canTransitionTo(target SubmissionStatus) error {
	switch c.status {
	case StatusIdle, StatusFailed:
		return c.allow(target, StatusSubmitting)
	case StatusSubmitting:
		return c.allow(target, StatusSucceeded, StatusFailed)
	}
	return NewInvalidTransitionError(c.status, target)
}

func (c *Checkout) allow(target SubmissionStatus, allowed ...SubmissionStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(c.status, target)
}
