package handlers

import (
	"net/http"

	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest"
)

type QuantityRequest struct {
	Quantity string `json:"quantity"`
}

func (h *Handlers) ListAvailable(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.ToAPICatalog(h.checkout.Available()))
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.ToAPICart(h.checkout.Cart()))
}

func (h *Handlers) MoveToCart(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := h.checkout.MoveToCart(id); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPICart(h.checkout.Cart()))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := h.checkout.RemoveFromCart(id); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPICart(h.checkout.Cart()))
}

func (h *Handlers) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var req QuantityRequest
	if err := h.decodeBody(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	if err := h.checkout.SetQuantity(id, req.Quantity); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToAPICart(h.checkout.Cart()))
}
