package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/persistence/memory"
	"github.com/cucumber/godog"
)

const featurePath = "../../../features/checkout.feature"

// scriptedOperator answers every Pay call with the configured outcome.
type scriptedOperator struct {
	mu       sync.Mutex
	err      error
	requests []application.PayRequest
}

func (o *scriptedOperator) Pay(_ context.Context, _ string, req application.PayRequest, _ string) (*application.PayResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests = append(o.requests, req)
	if o.err != nil {
		return nil, o.err
	}
	return &application.PayResponse{StatusCode: 200}, nil
}

type checkoutTestContext struct {
	operator *scriptedOperator
	attempts *memory.AttemptRepository
	service  *services.CheckoutService
	result   services.SubmitResult
}

func (c *checkoutTestContext) reset() {
	c.operator = &scriptedOperator{}
	c.attempts = memory.NewAttemptRepository()
	c.service = nil
	c.result = services.SubmitResult{}
}

func (c *checkoutTestContext) aCatalogWith(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("catalog table has no items")
	}

	seed := make([]domain.CatalogItem, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		id, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}
		cents, err := strconv.ParseInt(row.Cells[3].Value, 10, 64)
		if err != nil {
			return err
		}
		seed = append(seed, domain.CatalogItem{
			ID:        domain.ItemID(id),
			Name:      row.Cells[1].Value,
			Icon:      row.Cells[2].Value,
			UnitPrice: domain.Money{Cents: cents},
		})
	}

	cart, err := domain.NewCartEngine(seed)
	if err != nil {
		return err
	}
	c.service = services.NewCheckoutService(cart, c.operator, c.attempts, services.CheckoutConfig{
		Defaults: testhelpers.DefaultFormDefaults(),
		Strict:   true,
	}, testhelpers.DiscardLogger())
	return nil
}

func (c *checkoutTestContext) iMoveItemToTheCart(id int) error {
	return c.service.MoveToCart(domain.ItemID(id))
}

func (c *checkoutTestContext) iRemoveItemFromTheCart(id int) error {
	return c.service.RemoveFromCart(domain.ItemID(id))
}

func (c *checkoutTestContext) iSetTheQuantityOfItemTo(id int, raw string) error {
	return c.service.SetQuantity(domain.ItemID(id), raw)
}

func (c *checkoutTestContext) theAvailableItemsAre(expected string) error {
	ids := make([]string, 0)
	for _, item := range c.service.Available() {
		ids = append(ids, strconv.Itoa(int(item.ID)))
	}
	if got := strings.Join(ids, ","); got != expected {
		return fmt.Errorf("expected available items %q, got %q", expected, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartTotalIs(expected string) error {
	if got := c.service.Cart().Total.Display(); got != expected {
		return fmt.Errorf("expected cart total %q, got %q", expected, got)
	}
	return nil
}

func (c *checkoutTestContext) theQuantityOfItemIs(id, expected int) error {
	for _, line := range c.service.Cart().Lines {
		if line.Item.ID == domain.ItemID(id) {
			if line.Quantity != expected {
				return fmt.Errorf("expected quantity %d for item %d, got %d", expected, id, line.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("item %d is not in the cart", id)
}

func (c *checkoutTestContext) iOpenTheCheckout() error {
	return c.service.BeginCheckout()
}

func (c *checkoutTestContext) iTypeInto(value, field string) error {
	return c.service.UpdateField(domain.Field(field), value)
}

func (c *checkoutTestContext) view() (services.CheckoutView, error) {
	return c.service.Checkout()
}

func (c *checkoutTestContext) theCardNetworkIs(expected string) error {
	v, err := c.view()
	if err != nil {
		return err
	}
	if got := v.CardNetwork.Label(); got != expected {
		return fmt.Errorf("expected card network %q, got %q", expected, got)
	}
	return nil
}

func (c *checkoutTestContext) theCardNumberShows(expected string) error {
	v, err := c.view()
	if err != nil {
		return err
	}
	if v.Details.CardNumber != expected {
		return fmt.Errorf("expected card number %q, got %q", expected, v.Details.CardNumber)
	}
	return nil
}

func (c *checkoutTestContext) theInstallmentLineIs(expected string) error {
	v, err := c.view()
	if err != nil {
		return err
	}
	if got := v.Quote.String(); got != expected {
		return fmt.Errorf("expected installment line %q, got %q", expected, got)
	}
	return nil
}

func (c *checkoutTestContext) theOperatorApprovesPayments() error {
	c.operator.mu.Lock()
	defer c.operator.mu.Unlock()
	c.operator.err = nil
	return nil
}

func (c *checkoutTestContext) theOperatorDeclinesWith(resposta, detalhes string) error {
	c.operator.mu.Lock()
	defer c.operator.mu.Unlock()
	c.operator.err = &application.OperatorError{Resposta: resposta, Detalhes: detalhes, StatusCode: 402}
	return nil
}

func (c *checkoutTestContext) theOperatorIsUnreachable() error {
	c.operator.mu.Lock()
	defer c.operator.mu.Unlock()
	c.operator.err = errors.New("connection refused")
	return nil
}

func (c *checkoutTestContext) iSubmitThePayment() error {
	result, err := c.service.Submit(context.Background())
	if err != nil {
		return err
	}
	c.result = result
	return nil
}

func (c *checkoutTestContext) theSubmissionStatusIs(expected string) error {
	if got := string(c.result.Status); got != expected {
		return fmt.Errorf("expected status %q, got %q", expected, got)
	}
	return nil
}

func (c *checkoutTestContext) theNotificationReads(expected string) error {
	if c.result.Notification == nil {
		return errors.New("expected a notification, got none")
	}
	if c.result.Notification.Message != expected {
		return fmt.Errorf("expected notification %q, got %q", expected, c.result.Notification.Message)
	}
	return nil
}

func (c *checkoutTestContext) theOperatorReceivedRequests(count int, cents int64, installments int) error {
	c.operator.mu.Lock()
	defer c.operator.mu.Unlock()

	if len(c.operator.requests) != count {
		return fmt.Errorf("expected %d operator requests, got %d", count, len(c.operator.requests))
	}
	for i, req := range c.operator.requests {
		if req.ValorEmCentavos != cents || req.Parcelas != installments {
			return fmt.Errorf("request %d carried %d cents in %d installments", i, req.ValorEmCentavos, req.Parcelas)
		}
	}
	return nil
}

func (c *checkoutTestContext) theAttemptsLedgerHolds(count int, status string) error {
	attempts, err := c.service.Attempts(context.Background(), 100)
	if err != nil {
		return err
	}
	if len(attempts) != count {
		return fmt.Errorf("expected %d attempts, got %d", count, len(attempts))
	}
	for _, a := range attempts {
		if string(a.Status) != status {
			return fmt.Errorf("expected attempt status %q, got %q", status, a.Status)
		}
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a catalog with:$`, tc.aCatalogWith)
	ctx.Step(`^a cart holding item (\d+)$`, tc.iMoveItemToTheCart)
	ctx.Step(`^I move item (\d+) to the cart$`, tc.iMoveItemToTheCart)
	ctx.Step(`^I remove item (\d+) from the cart$`, tc.iRemoveItemFromTheCart)
	ctx.Step(`^I set the quantity of item (\d+) to "([^"]*)"$`, tc.iSetTheQuantityOfItemTo)
	ctx.Step(`^the available items are "([^"]*)"$`, tc.theAvailableItemsAre)
	ctx.Step(`^the cart total is "([^"]*)"$`, tc.theCartTotalIs)
	ctx.Step(`^the quantity of item (\d+) is (\d+)$`, tc.theQuantityOfItemIs)

	ctx.Step(`^I open the checkout$`, tc.iOpenTheCheckout)
	ctx.Step(`^I type "([^"]*)" into "([^"]*)"$`, tc.iTypeInto)
	ctx.Step(`^the card network is "([^"]*)"$`, tc.theCardNetworkIs)
	ctx.Step(`^the card number shows "([^"]*)"$`, tc.theCardNumberShows)
	ctx.Step(`^the installment line is "([^"]*)"$`, tc.theInstallmentLineIs)

	ctx.Step(`^the operator approves payments$`, tc.theOperatorApprovesPayments)
	ctx.Step(`^the operator declines with "([^"]*)" and "([^"]*)"$`, tc.theOperatorDeclinesWith)
	ctx.Step(`^the operator is unreachable$`, tc.theOperatorIsUnreachable)
	ctx.Step(`^I submit the payment$`, tc.iSubmitThePayment)
	ctx.Step(`^the submission status is "([^"]*)"$`, tc.theSubmissionStatusIs)
	ctx.Step(`^the notification reads "([^"]*)"$`, tc.theNotificationReads)
	ctx.Step(`^the operator received (\d+) requests? for (\d+) cents in (\d+) installments?$`, tc.theOperatorReceivedRequests)
	ctx.Step(`^the attempts ledger holds (\d+) "([^"]*)" attempts?$`, tc.theAttemptsLedgerHolds)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featurePath},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
