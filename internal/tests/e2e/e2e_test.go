package e2e

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-checkout/internal/config"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/operator"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest/server"
	"github.com/stretchr/testify/suite"
)

type E2ETestSuite struct {
	suite.Suite
	operator       *FakeOperator
	operatorServer *httptest.Server
	server         *httptest.Server
	client         *TestClient
}

func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

func (suite *E2ETestSuite) SetupTest() {
	suite.operator = &FakeOperator{}
	suite.operatorServer = httptest.NewServer(suite.operator)

	cart, err := domain.NewCartEngine(testhelpers.TwoItemSeed())
	suite.Require().NoError(err)

	logger := testhelpers.DiscardLogger()
	client := operator.NewOperatorClient(config.OperatorConfig{
		BaseURL: suite.operatorServer.URL,
		Timeout: 5 * time.Second,
	})
	svc := services.NewCheckoutService(cart, client, memory.NewAttemptRepository(), services.CheckoutConfig{
		Defaults: testhelpers.DefaultFormDefaults(),
		Strict:   true,
	}, logger)

	handler, err := server.NewHandler(context.Background(), svc, 10*time.Second, logger)
	suite.Require().NoError(err)

	suite.server = httptest.NewServer(handler)
	suite.client = NewTestClient(suite.server.URL)
}

func (suite *E2ETestSuite) TearDownTest() {
	suite.server.Close()
	suite.operatorServer.Close()
}

func (suite *E2ETestSuite) fillCartAndForm() {
	t := suite.T()

	_, err := suite.client.MoveToCart(t, 1)
	suite.Require().NoError(err)
	_, err = suite.client.MoveToCart(t, 2)
	suite.Require().NoError(err)
	cart, err := suite.client.SetQuantity(t, 2, "2")
	suite.Require().NoError(err)
	suite.Equal(int64(104000), cart.TotalCents)
	suite.Equal("R$ 1040.00", cart.Total)

	_, err = suite.client.BeginCheckout(t)
	suite.Require().NoError(err)
	view, err := suite.client.UpdateField(t, "numero_cartao", "1111222233334444")
	suite.Require().NoError(err)
	suite.Require().NotNil(view.CardNetwork)
	suite.Equal("mister", *view.CardNetwork)
	suite.Equal("1111.2222.3333.4444", view.Details.CardNumber)

	_, err = suite.client.UpdateField(t, "nome_cliente", "maria souza")
	suite.Require().NoError(err)
	_, err = suite.client.UpdateField(t, "cod_seguranca", "123")
	suite.Require().NoError(err)
	view, err = suite.client.UpdateField(t, "parcelas", "4")
	suite.Require().NoError(err)
	suite.Equal("4 x R$ 260.00", view.Installment.Display)
}

func (suite *E2ETestSuite) Test_CheckoutFailureFlow() {
	t := suite.T()
	suite.fillCartAndForm()
	suite.operator.Respond(http.StatusPaymentRequired, `{"resposta":"erro","detalhes":"cartão recusado"}`)

	result, err := suite.client.Submit(t)
	suite.Require().NoError(err)

	suite.Equal("FAILED", result.Status)
	suite.Require().NotNil(result.Failure)
	suite.Equal("erro", result.Failure.Resposta)
	suite.Equal("cartão recusado", result.Failure.Detalhes)
	suite.Require().NotNil(result.Notification)
	suite.Equal("erro: cartão recusado", result.Notification.Message)

	requests, paths := suite.operator.Requests()
	suite.Require().Len(requests, 1)
	suite.Equal([]string{"/op-01/pay"}, paths)
	suite.Equal("1111.2222.3333.4444", requests[0]["numero_cartao"])
	suite.Equal("MARIA SOUZA", requests[0]["nome_cliente"])
	suite.Equal("mister", requests[0]["bandeira"])
	suite.EqualValues(104000, requests[0]["valor_em_centavos"])
	suite.EqualValues(4, requests[0]["parcelas"])
	suite.Equal("loja-01", requests[0]["cod_loja"])
	suite.Equal("op-01", requests[0]["cod_op"])

	attempts := suite.client.Attempts(t)
	suite.Require().Len(attempts, 1)
	suite.Equal("FAILED", attempts[0].Status)
	suite.Equal("4444", attempts[0].CardLast4)
}

func (suite *E2ETestSuite) Test_CheckoutSuccessFlow() {
	t := suite.T()
	suite.fillCartAndForm()
	suite.operator.Respond(http.StatusCreated, `{"id":"op-123"}`)

	result, err := suite.client.Submit(t)
	suite.Require().NoError(err)

	suite.Equal("SUCCEEDED", result.Status)
	suite.Nil(result.Failure)
	suite.Require().NotNil(result.Notification)
	suite.Equal("Compra efetuada com sucesso!", result.Notification.Message)

	suite.Require().NoError(suite.client.Cancel(t))
	suite.Len(suite.client.Catalog(t), 0)
}

func (suite *E2ETestSuite) Test_CartErrors() {
	t := suite.T()

	_, err := suite.client.RemoveFromCart(t, 1)
	suite.assertAPIError(err, http.StatusNotFound, domain.ErrCodeItemNotInCart)

	_, err = suite.client.BeginCheckout(t)
	suite.assertAPIError(err, http.StatusUnprocessableEntity, domain.ErrCodeEmptyCart)

	_, err = suite.client.MoveToCart(t, 1)
	suite.Require().NoError(err)
	cart, err := suite.client.SetQuantity(t, 1, "abc")
	suite.Require().NoError(err)
	suite.Equal(1, cart.Lines[0].Quantity)

	cart, err = suite.client.RemoveFromCart(t, 1)
	suite.Require().NoError(err)
	suite.Empty(cart.Lines)

	items := suite.client.Catalog(t)
	suite.Require().Len(items, 2)
	suite.Equal(2, items[0].ID)
	suite.Equal(1, items[1].ID)
}

func (suite *E2ETestSuite) Test_RequestValidation() {
	t := suite.T()

	err := suite.client.do(t, http.MethodPost, "/cart/items/abc", nil, nil)
	suite.assertAPIError(err, http.StatusBadRequest, "INVALID_INPUT")

	_, err = suite.client.MoveToCart(t, 1)
	suite.Require().NoError(err)
	_, err = suite.client.BeginCheckout(t)
	suite.Require().NoError(err)

	err = suite.client.do(t, http.MethodPatch, "/checkout/fields", map[string]string{"value": "x"}, nil)
	suite.assertAPIError(err, http.StatusBadRequest, "INVALID_INPUT")

	_, err = suite.client.UpdateField(t, "validade", "12/30")
	suite.assertAPIError(err, http.StatusBadRequest, domain.ErrCodeUnknownField)
}

func (suite *E2ETestSuite) Test_OpenAPIDocument() {
	resp, err := http.Get(suite.server.URL + "/openapi.yaml")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
}

func (suite *E2ETestSuite) assertAPIError(err error, status int, code string) {
	var apiErr *APIError
	suite.Require().True(errors.As(err, &apiErr), "expected API error, got %v", err)
	suite.Equal(status, apiErr.Status)
	suite.Equal(code, apiErr.Code)
}
