package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
)

var (
	ErrAttemptNotFound  = errors.New("payment attempt not found")
	ErrDuplicateAttempt = errors.New("payment attempt already recorded")
)

type AttemptRepository struct {
	db Executor
}

func NewAttemptRepository(db Executor) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Start records an attempt before the operator is called.
func (r *AttemptRepository) Start(ctx context.Context, attempt *domain.PaymentAttempt) error {
	query := `
		INSERT INTO payment_attempts (
			id, operator_code, store_code, card_last4, card_network,
			amount_cents, installments, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	m := toAttemptModel(attempt)
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.OperatorCode,
		m.StoreCode,
		m.CardLast4,
		m.CardNetwork,
		m.AmountCents,
		m.Installments,
		m.Status,
		m.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateAttempt
		}
		return fmt.Errorf("failed to create payment attempt: %w", err)
	}
	return nil
}

// Complete stores the outcome of a finished attempt.
func (r *AttemptRepository) Complete(ctx context.Context, attempt *domain.PaymentAttempt) error {
	query := `
		UPDATE payment_attempts
		SET status = $2, resposta = $3, detalhes = $4, completed_at = $5
		WHERE id = $1
	`

	m := toAttemptModel(attempt)
	tag, err := r.db.Exec(ctx, query, m.ID, m.Status, m.Resposta, m.Detalhes, m.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to complete payment attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAttemptNotFound
	}
	return nil
}

// List returns the newest attempts first.
func (r *AttemptRepository) List(ctx context.Context, limit int) ([]*domain.PaymentAttempt, error) {
	query := `
		SELECT id, operator_code, store_code, card_last4, card_network,
		       amount_cents, installments, status, resposta, detalhes,
		       created_at, completed_at
		FROM payment_attempts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment attempts: %w", err)
	}

	attempts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.PaymentAttempt, error) {
		var m AttemptModel
		err := row.Scan(
			&m.ID,
			&m.OperatorCode,
			&m.StoreCode,
			&m.CardLast4,
			&m.CardNetwork,
			&m.AmountCents,
			&m.Installments,
			&m.Status,
			&m.Resposta,
			&m.Detalhes,
			&m.CreatedAt,
			&m.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		return toDomainAttempt(m), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payment attempts: %w", err)
	}
	return attempts, nil
}
