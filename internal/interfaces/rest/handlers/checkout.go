package handlers

import (
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest"
	"github.com/oapi-codegen/runtime"
)

const defaultAttemptsLimit = 20

type FieldUpdateRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

func (h *Handlers) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.BeginCheckout(); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	h.writeCheckout(w, http.StatusCreated)
}

func (h *Handlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	h.writeCheckout(w, http.StatusOK)
}

func (h *Handlers) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req FieldUpdateRequest
	if err := h.decodeBody(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := h.checkout.UpdateField(domain.Field(req.Name), req.Value); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	h.writeCheckout(w, http.StatusOK)
}

func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkout.Submit(r.Context())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPISubmitResult(result))
}

func (h *Handlers) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.Cancel(); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DismissNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.DismissNotification(); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListAttempts(w http.ResponseWriter, r *http.Request) {
	limit := defaultAttemptsLimit
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	attempts, err := h.checkout.Attempts(r.Context(), limit)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIAttempts(attempts))
}

func (h *Handlers) writeCheckout(w http.ResponseWriter, status int) {
	view, err := h.checkout.Checkout()
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	rest.WriteJSON(w, status, rest.ToAPICheckout(view))
}
