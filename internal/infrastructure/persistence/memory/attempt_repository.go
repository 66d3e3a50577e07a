package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

var (
	ErrAttemptNotFound  = errors.New("payment attempt not found")
	ErrDuplicateAttempt = errors.New("payment attempt already recorded")
)

// AttemptRepository keeps the ledger in process memory.
type AttemptRepository struct {
	mu       sync.RWMutex
	attempts map[string]domain.PaymentAttempt
}

func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{attempts: make(map[string]domain.PaymentAttempt)}
}

func (r *AttemptRepository) Start(_ context.Context, attempt *domain.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.attempts[attempt.ID]; exists {
		return ErrDuplicateAttempt
	}
	r.attempts[attempt.ID] = *attempt
	return nil
}

func (r *AttemptRepository) Complete(_ context.Context, attempt *domain.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.attempts[attempt.ID]; !exists {
		return ErrAttemptNotFound
	}
	r.attempts[attempt.ID] = *attempt
	return nil
}

// List returns the newest attempts first.
func (r *AttemptRepository) List(_ context.Context, limit int) ([]*domain.PaymentAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.PaymentAttempt, 0, len(r.attempts))
	for _, a := range r.attempts {
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
