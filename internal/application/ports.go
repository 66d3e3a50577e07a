package application

import (
	"context"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// PaymentOperator is the port for the external payment operator.
type PaymentOperator interface {
	Pay(ctx context.Context, operatorCode string, req PayRequest, idempotencyKey string) (*PayResponse, error)
}

// CatalogSource supplies the fixed catalog seed for a session.
type CatalogSource interface {
	Load(ctx context.Context) ([]domain.CatalogItem, error)
}

// AttemptRepository is the port for the payment attempt ledger.
type AttemptRepository interface {
	Start(ctx context.Context, attempt *domain.PaymentAttempt) error
	Complete(ctx context.Context, attempt *domain.PaymentAttempt) error
	List(ctx context.Context, limit int) ([]*domain.PaymentAttempt, error)
}
