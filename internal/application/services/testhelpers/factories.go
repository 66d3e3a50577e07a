package testhelpers

import (
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/stretchr/testify/require"
)

// FixedNow is the clock used by services built here.
var FixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// TwoItemSeed is the catalog of the end-to-end example: A at 200.00 and B at
// 420.00.
func TwoItemSeed() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: 1, Name: "TV 4k", Icon: "Tv", UnitPrice: domain.Money{Cents: 20000}},
		{ID: 2, Name: "PC gamer", Icon: "Computer", UnitPrice: domain.Money{Cents: 42000}},
	}
}

func DefaultFormDefaults() domain.FormDefaults {
	return domain.FormDefaults{StoreCode: "loja-01", OperatorCode: "op-01"}
}

// NewCheckoutService builds a strict service over the two-item seed.
func NewCheckoutService(t *testing.T, operator application.PaymentOperator, attempts application.AttemptRepository, strict bool) *services.CheckoutService {
	t.Helper()

	cart, err := domain.NewCartEngine(TwoItemSeed())
	require.NoError(t, err)

	return services.NewCheckoutService(cart, operator, attempts, services.CheckoutConfig{
		Defaults: DefaultFormDefaults(),
		Strict:   strict,
		Now:      func() time.Time { return FixedNow },
	}, DiscardLogger())
}

// FillCart puts A (qty 1) and B (qty 2) in the cart for a total of 1040.00.
func FillCart(t *testing.T, svc *services.CheckoutService) {
	t.Helper()
	require.NoError(t, svc.MoveToCart(1))
	require.NoError(t, svc.MoveToCart(2))
	require.NoError(t, svc.SetQuantity(2, "2"))
}

// FillForm opens the checkout and types a mister card.
func FillForm(t *testing.T, svc *services.CheckoutService) {
	t.Helper()
	require.NoError(t, svc.BeginCheckout())
	require.NoError(t, svc.UpdateField(domain.FieldCardNumber, "1111222233334444"))
	require.NoError(t, svc.UpdateField(domain.FieldCardHolder, "maria souza"))
	require.NoError(t, svc.UpdateField(domain.FieldSecurityCode, "123"))
	require.NoError(t, svc.UpdateField(domain.FieldInstallments, "4"))
}
