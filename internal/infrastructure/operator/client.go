package operator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/config"
)

type HTTPOperatorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOperatorClient(cfg config.OperatorConfig) *HTTPOperatorClient {
	return &HTTPOperatorClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Pay posts one payment to the operator identified by operatorCode.
func (c *HTTPOperatorClient) Pay(ctx context.Context, operatorCode string, req application.PayRequest, idempotencyKey string) (*application.PayResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/pay", c.baseURL, url.PathEscape(operatorCode))
	return sendRequest(c, ctx, http.MethodPost, endpoint, &req, idempotencyKey)
}

func sendRequest[Req any](c *HTTPOperatorClient, ctx context.Context, method, endpoint string, reqBody *Req, idempotencyKey string) (*application.PayResponse, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeFailure(resp.StatusCode, body)
	}

	return &application.PayResponse{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(body),
	}, nil
}

// decodeFailure turns a non-2xx answer into an OperatorError when the body
// carries the operator's {resposta, detalhes} shape.
func decodeFailure(status int, body []byte) error {
	var errResp application.OperatorErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Resposta == "" {
		return fmt.Errorf("operator returned status %d: %s", status, strings.TrimSpace(string(body)))
	}
	return &application.OperatorError{
		Resposta:   errResp.Resposta,
		Detalhes:   errResp.Detalhes,
		StatusCode: status,
	}
}
