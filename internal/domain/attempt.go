package domain

import (
	"errors"
	"time"
)

// PaymentAttempt is the ledger record of one submission to the operator.
type PaymentAttempt struct {
	ID           string
	OperatorCode string
	StoreCode    string
	CardLast4    string
	CardNetwork  CardNetwork
	AmountCents  int64
	Installments int
	Status       SubmissionStatus

	Resposta *string
	Detalhes *string

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewPaymentAttempt opens a ledger record for a command that is about to be sent.
func NewPaymentAttempt(id string, cmd PaymentCommand, createdAt time.Time) (*PaymentAttempt, error) {
	if id == "" {
		return nil, errors.New("attempt ID is required")
	}
	if cmd.OperatorCode == "" {
		return nil, errors.New("operator code is required")
	}

	return &PaymentAttempt{
		ID:           id,
		OperatorCode: cmd.OperatorCode,
		StoreCode:    cmd.StoreCode,
		CardLast4:    LastFour(cmd.CardNumber),
		CardNetwork:  cmd.CardNetwork,
		AmountCents:  cmd.Amount.Cents,
		Installments: cmd.Installments,
		Status:       StatusSubmitting,
		CreatedAt:    createdAt,
	}, nil
}

func (a *PaymentAttempt) MarkSucceeded(at time.Time) error {
	if a.Status != StatusSubmitting {
		return NewInvalidTransitionError(a.Status, StatusSucceeded)
	}
	a.Status = StatusSucceeded
	a.CompletedAt = &at
	return nil
}

func (a *PaymentAttempt) MarkFailed(reason FailureReason, at time.Time) error {
	if a.Status != StatusSubmitting {
		return NewInvalidTransitionError(a.Status, StatusFailed)
	}
	a.Status = StatusFailed
	a.Resposta = &reason.Resposta
	a.Detalhes = &reason.Detalhes
	a.CompletedAt = &at
	return nil
}
