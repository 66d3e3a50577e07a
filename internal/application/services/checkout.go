package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/google/uuid"
)

// CheckoutConfig tunes a CheckoutService.
type CheckoutConfig struct {
	Defaults domain.FormDefaults
	// Strict returns invariant violations to the caller. When false they are
	// logged and the call becomes a no-op.
	Strict bool
	Now    func() time.Time
}

// CheckoutService owns one shopping session: the cart partition and, while the
// payment surface is shown, the checkout. The mutex guards transitions only; it
// is never held across the operator call.
type CheckoutService struct {
	mu       sync.Mutex
	cart     *domain.CartEngine
	checkout *domain.Checkout

	operator application.PaymentOperator
	attempts application.AttemptRepository
	defaults domain.FormDefaults
	strict   bool
	now      func() time.Time
	logger   *slog.Logger
}

func NewCheckoutService(
	cart *domain.CartEngine,
	operator application.PaymentOperator,
	attempts application.AttemptRepository,
	cfg CheckoutConfig,
	logger *slog.Logger,
) *CheckoutService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &CheckoutService{
		cart:     cart,
		operator: operator,
		attempts: attempts,
		defaults: cfg.Defaults,
		strict:   cfg.Strict,
		now:      now,
		logger:   logger,
	}
}

// Available returns the available pool in display order.
func (s *CheckoutService) Available() []domain.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Available()
}

func (s *CheckoutService) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *CheckoutService) MoveToCart(id domain.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.MoveToCart(id); err != nil {
		return s.reject("move to cart", err, "item_id", id)
	}
	s.logger.Debug("item moved to cart", "item_id", id)
	return nil
}

func (s *CheckoutService) RemoveFromCart(id domain.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.RemoveFromCart(id); err != nil {
		return s.reject("remove from cart", err, "item_id", id)
	}
	s.logger.Debug("item removed from cart", "item_id", id)
	return nil
}

// SetQuantity applies raw quantity input. Non-numeric or non-positive input is
// ignored without error.
func (s *CheckoutService) SetQuantity(id domain.ItemID, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.cart.SetQuantityInput(id, raw)
	if err != nil {
		return s.reject("set quantity", err, "item_id", id)
	}
	if !changed {
		s.logger.Debug("quantity input ignored", "item_id", id, "input", raw)
	}
	return nil
}

// BeginCheckout shows the payment surface with a fresh form. The cart must not
// be empty.
func (s *CheckoutService) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout != nil {
		return s.reject("begin checkout", domain.ErrCheckoutAlreadyOpen)
	}
	if s.cart.IsEmpty() {
		return domain.ErrEmptyCart
	}

	s.checkout = domain.NewCheckout(s.defaults)
	s.logger.Info("checkout opened", "total_cents", s.cart.Total().Cents)
	return nil
}

func (s *CheckoutService) UpdateField(name domain.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return s.reject("update field", domain.ErrCheckoutNotOpen, "field", name)
	}
	if err := s.checkout.UpdateField(name, value); err != nil {
		return s.reject("update field", err, "field", name)
	}
	return nil
}

// Checkout returns the open checkout surface.
func (s *CheckoutService) Checkout() (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return CheckoutView{}, domain.ErrCheckoutNotOpen
	}
	return s.checkoutView(), nil
}

// Submit sends exactly one payment request for the open checkout and waits for
// the operator's answer. A call that arrives while a request is in flight
// returns immediately with Ignored set, as does a call rejected in production
// mode; both report the current status.
func (s *CheckoutService) Submit(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	if s.checkout == nil {
		s.mu.Unlock()
		if err := s.reject("submit", domain.ErrCheckoutNotOpen); err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Status: domain.StatusIdle, Ignored: true}, nil
	}

	checkout := s.checkout
	cmd, started, err := checkout.BeginSubmit(s.cart.Total())
	if err != nil {
		current := SubmitResult{
			Status:       checkout.Status(),
			Reason:       checkout.Reason(),
			Notification: checkout.Notification(),
			Ignored:      true,
		}
		s.mu.Unlock()
		if err := s.reject("submit", err); err != nil {
			return SubmitResult{}, err
		}
		return current, nil
	}
	if !started {
		s.mu.Unlock()
		s.logger.Warn("submit ignored, payment already in flight")
		return SubmitResult{Status: domain.StatusSubmitting, Ignored: true}, nil
	}
	s.cart.Lock()
	s.mu.Unlock()

	// The payment and its ledger writes are not cancelled with the caller. The
	// operator client's timeout bounds them.
	ctx = context.WithoutCancel(ctx)

	attemptID := uuid.New().String()
	logger := s.logger.With(
		"attempt_id", attemptID,
		"operator", cmd.OperatorCode,
		"amount_cents", cmd.Amount.Cents,
		"card_last4", domain.LastFour(cmd.CardNumber),
	)

	attempt := s.startAttempt(ctx, attemptID, cmd, logger)

	logger.Info("submitting payment", "network", cmd.CardNetwork.Label(), "installments", cmd.Installments)
	_, payErr := s.operator.Pay(ctx, cmd.OperatorCode, application.NewPayRequest(cmd), attemptID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Unlock()

	now := s.now()
	if payErr != nil {
		reason := application.FailureReasonFrom(payErr)
		if err := checkout.Fail(reason, now); err != nil {
			return SubmitResult{}, application.NewInternalError(err)
		}
		logger.Warn("payment failed",
			"resposta", reason.Resposta,
			"detalhes", reason.Detalhes,
			"category", application.CategorizeError(payErr),
			"error", payErr,
		)
		if attempt != nil {
			if err := attempt.MarkFailed(reason, now); err == nil {
				s.completeAttempt(ctx, attempt, logger)
			}
		}
	} else {
		if err := checkout.Succeed(now); err != nil {
			return SubmitResult{}, application.NewInternalError(err)
		}
		logger.Info("payment succeeded")
		if attempt != nil {
			if err := attempt.MarkSucceeded(now); err == nil {
				s.completeAttempt(ctx, attempt, logger)
			}
		}
	}

	return SubmitResult{
		AttemptID:    attemptID,
		Status:       checkout.Status(),
		Reason:       checkout.Reason(),
		Notification: checkout.Notification(),
	}, nil
}

// Cancel closes the payment surface and discards the form. Not allowed while a
// payment is in flight.
func (s *CheckoutService) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return s.reject("cancel", domain.ErrCheckoutNotOpen)
	}
	if err := s.checkout.CanCancel(); err != nil {
		return s.reject("cancel", err)
	}

	s.logger.Info("checkout closed", "status", s.checkout.Status())
	s.checkout = nil
	return nil
}

func (s *CheckoutService) DismissNotification() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return s.reject("dismiss notification", domain.ErrCheckoutNotOpen)
	}
	s.checkout.DismissNotification()
	return nil
}

// ExpireNotification hides a notification older than ttl. Safe to call with no
// checkout open.
func (s *CheckoutService) ExpireNotification(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return false
	}
	return s.checkout.ExpireNotification(now, ttl)
}

// Attempts lists the most recent payment attempts of this session.
func (s *CheckoutService) Attempts(ctx context.Context, limit int) ([]*domain.PaymentAttempt, error) {
	attempts, err := s.attempts.List(ctx, limit)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return attempts, nil
}

func (s *CheckoutService) startAttempt(ctx context.Context, id string, cmd domain.PaymentCommand, logger *slog.Logger) *domain.PaymentAttempt {
	attempt, err := domain.NewPaymentAttempt(id, cmd, s.now())
	if err != nil {
		logger.Error("could not build payment attempt", "error", err)
		return nil
	}
	if err := s.attempts.Start(ctx, attempt); err != nil {
		logger.Error("failed to record payment attempt", "error", err)
		return nil
	}
	return attempt
}

func (s *CheckoutService) completeAttempt(ctx context.Context, attempt *domain.PaymentAttempt, logger *slog.Logger) {
	if err := s.attempts.Complete(ctx, attempt); err != nil {
		logger.Error("failed to complete payment attempt", "status", attempt.Status, "error", err)
	}
}

// reject applies the invariant rule: violations surface as errors in strict
// mode and are logged no-ops otherwise. Other errors always surface.
func (s *CheckoutService) reject(op string, err error, attrs ...any) error {
	if !application.IsInvariantViolation(err) {
		return err
	}
	if s.strict {
		s.logger.Error("invariant violation", append([]any{"op", op, "error", err}, attrs...)...)
		return err
	}
	s.logger.Warn("invariant violation ignored", append([]any{"op", op, "error", err}, attrs...)...)
	return nil
}

func (s *CheckoutService) cartView() CartView {
	return CartView{
		Lines:  s.cart.Lines(),
		Total:  s.cart.Total(),
		Locked: s.cart.IsLocked(),
	}
}

func (s *CheckoutService) checkoutView() CheckoutView {
	total := s.cart.Total()
	details := s.checkout.Details()
	return CheckoutView{
		Details:      details,
		CardNetwork:  details.CardNetwork(),
		Total:        total,
		Quote:        s.checkout.InstallmentQuote(total),
		Status:       s.checkout.Status(),
		Reason:       s.checkout.Reason(),
		Notification: s.checkout.Notification(),
	}
}
