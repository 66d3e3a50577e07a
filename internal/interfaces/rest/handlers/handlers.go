package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/go-playground/validator"
	"github.com/oapi-codegen/runtime"
)

// Handlers exposes one checkout session over HTTP.
type Handlers struct {
	checkout *services.CheckoutService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(checkout *services.CheckoutService, logger *slog.Logger) *Handlers {
	return &Handlers{
		checkout: checkout,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register mounts every route on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /catalog", h.ListAvailable)
	mux.HandleFunc("GET /cart", h.GetCart)
	mux.HandleFunc("POST /cart/items/{id}", h.MoveToCart)
	mux.HandleFunc("DELETE /cart/items/{id}", h.RemoveFromCart)
	mux.HandleFunc("PUT /cart/items/{id}/quantity", h.SetQuantity)

	mux.HandleFunc("POST /checkout", h.BeginCheckout)
	mux.HandleFunc("GET /checkout", h.GetCheckout)
	mux.HandleFunc("DELETE /checkout", h.CancelCheckout)
	mux.HandleFunc("PATCH /checkout/fields", h.UpdateField)
	mux.HandleFunc("POST /checkout/submit", h.Submit)
	mux.HandleFunc("DELETE /checkout/notification", h.DismissNotification)
	mux.HandleFunc("GET /checkout/attempts", h.ListAttempts)
}

func itemIDParam(r *http.Request) (domain.ItemID, error) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", r.PathValue("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, application.NewInvalidInputError(fmt.Errorf("invalid format for parameter id: %w", err))
	}
	return domain.ItemID(id), nil
}

func (h *Handlers) decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return application.NewInvalidInputError(fmt.Errorf("decode body: %w", err))
	}
	if err := h.validate.Struct(dst); err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}
