package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/api"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest/middleware"
)

// NewHandler builds the routed, validated and instrumented HTTP handler for
// one checkout session.
func NewHandler(ctx context.Context, checkout *services.CheckoutService, requestTimeout time.Duration, logger *slog.Logger) (http.Handler, error) {
	doc, err := api.LoadSpec(ctx)
	if err != nil {
		return nil, err
	}

	validate, err := middleware.OpenAPIValidator(doc, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	handlers.NewHandlers(checkout, logger).Register(mux)

	handler := validate(mux)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(requestTimeout)(handler)

	return handler, nil
}
