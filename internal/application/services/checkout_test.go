package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/operator/mocks"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectedPayRequest() application.PayRequest {
	network := "mister"
	return application.PayRequest{
		NumeroCartao:    "1111.2222.3333.4444",
		NomeCliente:     "MARIA SOUZA",
		Bandeira:        &network,
		CodSeguranca:    "123",
		ValorEmCentavos: 104000,
		Parcelas:        4,
		CodLoja:         "loja-01",
		CodOp:           "op-01",
	}
}

func TestCheckoutService_EndToEndFailure(t *testing.T) {
	ctx := context.Background()
	mockOperator := mocks.NewMockPaymentOperator(t)
	attempts := memory.NewAttemptRepository()
	svc := testhelpers.NewCheckoutService(t, mockOperator, attempts, true)

	testhelpers.FillCart(t, svc)
	assert.Equal(t, int64(104000), svc.Cart().Total.Cents)

	testhelpers.FillForm(t, svc)
	view, err := svc.Checkout()
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkMister, view.CardNetwork)
	assert.Equal(t, "4 x R$ 260.00", view.Quote.String())

	mockOperator.EXPECT().
		Pay(mock.Anything, "op-01", expectedPayRequest(), mock.AnythingOfType("string")).
		Return(nil, &application.OperatorError{Resposta: "erro", Detalhes: "cartão recusado", StatusCode: http.StatusPaymentRequired}).
		Once()

	result, err := svc.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Status)
	require.NotNil(t, result.Reason)
	assert.Equal(t, "erro", result.Reason.Resposta)
	assert.Equal(t, "cartão recusado", result.Reason.Detalhes)
	require.NotNil(t, result.Notification)
	assert.Equal(t, "erro: cartão recusado", result.Notification.Message)
	assert.NotEmpty(t, result.AttemptID)

	assert.False(t, svc.Cart().Locked)

	list, err := svc.Attempts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, result.AttemptID, list[0].ID)
	assert.Equal(t, domain.StatusFailed, list[0].Status)
	assert.Equal(t, "4444", list[0].CardLast4)
}

func TestCheckoutService_Success(t *testing.T) {
	ctx := context.Background()
	mockOperator := mocks.NewMockPaymentOperator(t)
	svc := testhelpers.NewCheckoutService(t, mockOperator, memory.NewAttemptRepository(), true)
	testhelpers.FillCart(t, svc)
	testhelpers.FillForm(t, svc)

	var usedKey string
	mockOperator.EXPECT().
		Pay(mock.Anything, "op-01", mock.Anything, mock.AnythingOfType("string")).
		Run(func(_ context.Context, _ string, _ application.PayRequest, key string) { usedKey = key }).
		Return(&application.PayResponse{StatusCode: http.StatusOK}, nil).
		Once()

	result, err := svc.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, result.Status)
	assert.Nil(t, result.Reason)
	require.NotNil(t, result.Notification)
	assert.Equal(t, domain.SuccessMessage, result.Notification.Message)
	assert.Equal(t, result.AttemptID, usedKey)

	_, err = svc.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, svc.Cancel())
	_, err = svc.Checkout()
	assert.ErrorIs(t, err, domain.ErrCheckoutNotOpen)
}

func TestCheckoutService_TransportErrorBecomesGenericFailure(t *testing.T) {
	mockOperator := mocks.NewMockPaymentOperator(t)
	svc := testhelpers.NewCheckoutService(t, mockOperator, memory.NewAttemptRepository(), true)
	testhelpers.FillCart(t, svc)
	testhelpers.FillForm(t, svc)

	mockOperator.EXPECT().
		Pay(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("dial tcp: connection refused")).
		Once()

	result, err := svc.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Equal(t, "erro", result.Reason.Resposta)
	assert.Equal(t, "dial tcp: connection refused", result.Reason.Detalhes)
}

func TestCheckoutService_RetryAfterFailure(t *testing.T) {
	ctx := context.Background()
	mockOperator := mocks.NewMockPaymentOperator(t)
	svc := testhelpers.NewCheckoutService(t, mockOperator, memory.NewAttemptRepository(), true)
	testhelpers.FillCart(t, svc)
	testhelpers.FillForm(t, svc)

	mockOperator.EXPECT().
		Pay(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &application.OperatorError{Resposta: "erro", Detalhes: "saldo insuficiente"}).
		Once()
	first, err := svc.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, first.Status)

	require.NoError(t, svc.SetQuantity(2, "1"))
	mockOperator.EXPECT().
		Pay(mock.Anything, mock.Anything, mock.MatchedBy(func(req application.PayRequest) bool {
			return req.ValorEmCentavos == 62000 && req.NomeCliente == "MARIA SOUZA"
		}), mock.Anything).
		Return(&application.PayResponse{StatusCode: http.StatusOK}, nil).
		Once()

	second, err := svc.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, second.Status)
	assert.NotEqual(t, first.AttemptID, second.AttemptID)
}

func TestCheckoutService_CheckoutRules(t *testing.T) {
	t.Run("cannot open with empty cart", func(t *testing.T) {
		svc := testhelpers.NewCheckoutService(t, mocks.NewMockPaymentOperator(t), memory.NewAttemptRepository(), true)

		assert.ErrorIs(t, svc.BeginCheckout(), domain.ErrEmptyCart)
	})

	t.Run("cannot open twice", func(t *testing.T) {
		svc := testhelpers.NewCheckoutService(t, mocks.NewMockPaymentOperator(t), memory.NewAttemptRepository(), true)
		testhelpers.FillCart(t, svc)
		require.NoError(t, svc.BeginCheckout())

		assert.ErrorIs(t, svc.BeginCheckout(), domain.ErrCheckoutAlreadyOpen)
	})

	t.Run("submit after emptying cart is rejected", func(t *testing.T) {
		svc := testhelpers.NewCheckoutService(t, mocks.NewMockPaymentOperator(t), memory.NewAttemptRepository(), true)
		require.NoError(t, svc.MoveToCart(1))
		require.NoError(t, svc.BeginCheckout())
		require.NoError(t, svc.RemoveFromCart(1))

		_, err := svc.Submit(context.Background())
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("cancel discards the form", func(t *testing.T) {
		svc := testhelpers.NewCheckoutService(t, mocks.NewMockPaymentOperator(t), memory.NewAttemptRepository(), true)
		testhelpers.FillCart(t, svc)
		testhelpers.FillForm(t, svc)

		require.NoError(t, svc.Cancel())
		require.NoError(t, svc.BeginCheckout())

		view, err := svc.Checkout()
		require.NoError(t, err)
		assert.Empty(t, view.Details.CardNumber)
		assert.Equal(t, 1, view.Details.InstallmentCount)
		assert.Equal(t, domain.StatusIdle, view.Status)
	})
}

func TestCheckoutService_InvariantViolations(t *testing.T) {
	t.Run("strict mode surfaces them", func(t *testing.T) {
		svc := testhelpers.NewCheckoutService(t, mocks.NewMockPaymentOperator(t), memory.NewAttemptRepository(), true)

		assert.ErrorIs(t, svc.MoveToCart(99), domain.ErrItemNotAvailable)
		assert.ErrorIs(t, svc.RemoveFromCart(1), domain.ErrItemNotInCart)
		assert.ErrorIs(t, svc.UpdateField(domain.FieldCardHolder, "x"), domain.ErrCheckoutNotOpen)
		assert.ErrorIs(t, svc.Cancel(), domain.ErrCheckoutNotOpen)

		testhelpers.FillCart(t, svc)
		require.NoError(t, svc.BeginCheckout())
		assert.ErrorIs(t, svc.UpdateField("validade", "x"), domain.ErrUnknownField)
	})

	t.Run("production mode turns them into no-ops", func(t *testing.T) {
		svc := testhelpers.NewCheckoutService(t, mocks.NewMockPaymentOperator(t), memory.NewAttemptRepository(), false)

		assert.NoError(t, svc.MoveToCart(99))
		assert.NoError(t, svc.RemoveFromCart(1))
		assert.NoError(t, svc.Cancel())
		assert.Len(t, svc.Available(), 2)
		assert.Empty(t, svc.Cart().Lines)

		assert.ErrorIs(t, svc.BeginCheckout(), domain.ErrEmptyCart)
	})
}

func TestCheckoutService_NotificationLifecycle(t *testing.T) {
	mockOperator := mocks.NewMockPaymentOperator(t)
	svc := testhelpers.NewCheckoutService(t, mockOperator, memory.NewAttemptRepository(), true)

	assert.False(t, svc.ExpireNotification(testhelpers.FixedNow, time.Second))

	testhelpers.FillCart(t, svc)
	testhelpers.FillForm(t, svc)
	mockOperator.EXPECT().
		Pay(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &application.OperatorError{Resposta: "erro", Detalhes: "x"}).
		Once()
	_, err := svc.Submit(context.Background())
	require.NoError(t, err)

	assert.False(t, svc.ExpireNotification(testhelpers.FixedNow.Add(time.Second), 6*time.Second))
	assert.True(t, svc.ExpireNotification(testhelpers.FixedNow.Add(6*time.Second), 6*time.Second))

	view, err := svc.Checkout()
	require.NoError(t, err)
	assert.Nil(t, view.Notification)
	assert.Equal(t, domain.StatusFailed, view.Status)
	require.NoError(t, svc.DismissNotification())
}

type failingAttempts struct{}

func (failingAttempts) Start(context.Context, *domain.PaymentAttempt) error {
	return errors.New("ledger unavailable")
}

func (failingAttempts) Complete(context.Context, *domain.PaymentAttempt) error {
	return errors.New("ledger unavailable")
}

func (failingAttempts) List(context.Context, int) ([]*domain.PaymentAttempt, error) {
	return nil, errors.New("ledger unavailable")
}

func TestCheckoutService_LedgerFailureDoesNotChangeOutcome(t *testing.T) {
	mockOperator := mocks.NewMockPaymentOperator(t)
	svc := testhelpers.NewCheckoutService(t, mockOperator, failingAttempts{}, true)
	testhelpers.FillCart(t, svc)
	testhelpers.FillForm(t, svc)

	mockOperator.EXPECT().
		Pay(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&application.PayResponse{StatusCode: http.StatusOK}, nil).
		Once()

	result, err := svc.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, result.Status)

	_, err = svc.Attempts(context.Background(), 5)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInternal, svcErr.Code)
}

// ctxRecordingAttempts records the context state seen by the ledger writes.
type ctxRecordingAttempts struct {
	*memory.AttemptRepository
	startErr    error
	completeErr error
}

func (r *ctxRecordingAttempts) Start(ctx context.Context, a *domain.PaymentAttempt) error {
	r.startErr = ctx.Err()
	return r.AttemptRepository.Start(ctx, a)
}

func (r *ctxRecordingAttempts) Complete(ctx context.Context, a *domain.PaymentAttempt) error {
	r.completeErr = ctx.Err()
	return r.AttemptRepository.Complete(ctx, a)
}

func TestCheckoutService_CallerCancellationDoesNotAbortPayment(t *testing.T) {
	mockOperator := mocks.NewMockPaymentOperator(t)
	attempts := &ctxRecordingAttempts{AttemptRepository: memory.NewAttemptRepository()}
	svc := testhelpers.NewCheckoutService(t, mockOperator, attempts, true)
	testhelpers.FillCart(t, svc)
	testhelpers.FillForm(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var payCtxErr error
	mockOperator.EXPECT().
		Pay(mock.Anything, "op-01", mock.Anything, mock.AnythingOfType("string")).
		Run(func(payCtx context.Context, _ string, _ application.PayRequest, _ string) {
			cancel()
			payCtxErr = payCtx.Err()
		}).
		Return(&application.PayResponse{StatusCode: http.StatusOK}, nil).
		Once()

	result, err := svc.Submit(ctx)

	require.NoError(t, err)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.NoError(t, payCtxErr)
	assert.NoError(t, attempts.startErr)
	assert.NoError(t, attempts.completeErr)
	assert.Equal(t, domain.StatusSucceeded, result.Status)
	assert.Nil(t, result.Reason)

	list, err := svc.Attempts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusSucceeded, list[0].Status)
	assert.False(t, svc.Cart().Locked)
}

func TestCheckoutService_OversizedQuantityNeverReachesOperator(t *testing.T) {
	mockOperator := mocks.NewMockPaymentOperator(t)
	svc := testhelpers.NewCheckoutService(t, mockOperator, memory.NewAttemptRepository(), true)

	require.NoError(t, svc.MoveToCart(1))
	require.NoError(t, svc.SetQuantity(1, "9223372036854775807"))
	assert.Equal(t, int64(20000), svc.Cart().Total.Cents)

	require.NoError(t, svc.BeginCheckout())
	mockOperator.EXPECT().
		Pay(mock.Anything, mock.Anything, mock.MatchedBy(func(req application.PayRequest) bool {
			return req.ValorEmCentavos == 20000
		}), mock.Anything).
		Return(&application.PayResponse{StatusCode: http.StatusOK}, nil).
		Once()

	result, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, result.Status)
}

func TestCheckoutService_ProductionSubmitReportsCurrentStatus(t *testing.T) {
	mockOperator := mocks.NewMockPaymentOperator(t)
	svc := testhelpers.NewCheckoutService(t, mockOperator, memory.NewAttemptRepository(), false)

	result, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Ignored)
	assert.Equal(t, domain.StatusIdle, result.Status)

	testhelpers.FillCart(t, svc)
	testhelpers.FillForm(t, svc)
	mockOperator.EXPECT().
		Pay(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&application.PayResponse{StatusCode: http.StatusOK}, nil).
		Once()

	first, err := svc.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.StatusSucceeded, first.Status)

	again, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, again.Ignored)
	assert.Equal(t, domain.StatusSucceeded, again.Status)
	require.NotNil(t, again.Notification)
	assert.Equal(t, domain.SuccessMessage, again.Notification.Message)
}
