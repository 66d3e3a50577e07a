package rest

import (
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

type CatalogItem struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	UnitPrice      string `json:"unit_price"`
}

type CartLine struct {
	Item          CatalogItem `json:"item"`
	Quantity      int         `json:"quantity"`
	SubtotalCents int64       `json:"subtotal_cents"`
	Subtotal      string      `json:"subtotal"`
}

type Cart struct {
	Lines      []CartLine `json:"lines"`
	TotalCents int64      `json:"total_cents"`
	Total      string     `json:"total"`
	Locked     bool       `json:"locked"`
}

type PaymentDetails struct {
	CardNumber     string `json:"numero_cartao"`
	CardHolderName string `json:"nome_cliente"`
	SecurityCode   string `json:"cod_seguranca"`
	Installments   int    `json:"parcelas"`
	StoreCode      string `json:"cod_loja"`
	OperatorCode   string `json:"operadora"`
}

type Installment struct {
	Count   int    `json:"count"`
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

type FailureReason struct {
	Resposta string `json:"resposta"`
	Detalhes string `json:"detalhes"`
	Message  string `json:"message"`
}

type Notification struct {
	Kind     string    `json:"kind"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

type Checkout struct {
	Details          PaymentDetails `json:"details"`
	CardNetwork      *string        `json:"card_network"`
	CardNetworkLabel string         `json:"card_network_label"`
	TotalCents       int64          `json:"total_cents"`
	Total            string         `json:"total"`
	Installment      Installment    `json:"installment"`
	Status           string         `json:"status"`
	Failure          *FailureReason `json:"failure"`
	Notification     *Notification  `json:"notification"`
}

type SubmitResult struct {
	AttemptID    string         `json:"attempt_id,omitempty"`
	Status       string         `json:"status"`
	Ignored      bool           `json:"ignored"`
	Failure      *FailureReason `json:"failure"`
	Notification *Notification  `json:"notification"`
}

type PaymentAttempt struct {
	ID           string     `json:"id"`
	OperatorCode string     `json:"operator_code"`
	StoreCode    string     `json:"store_code"`
	CardLast4    string     `json:"card_last4"`
	CardNetwork  *string    `json:"card_network"`
	AmountCents  int64      `json:"amount_cents"`
	Installments int        `json:"installments"`
	Status       string     `json:"status"`
	Resposta     *string    `json:"resposta"`
	Detalhes     *string    `json:"detalhes"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

func ToAPICatalog(items []domain.CatalogItem) []CatalogItem {
	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		out = append(out, toAPICatalogItem(item))
	}
	return out
}

func toAPICatalogItem(item domain.CatalogItem) CatalogItem {
	return CatalogItem{
		ID:             int(item.ID),
		Name:           item.Name,
		Icon:           item.Icon,
		UnitPriceCents: item.UnitPrice.Cents,
		UnitPrice:      item.UnitPrice.Display(),
	}
}

func ToAPICart(v services.CartView) Cart {
	lines := make([]CartLine, 0, len(v.Lines))
	for _, line := range v.Lines {
		subtotal := line.Subtotal()
		lines = append(lines, CartLine{
			Item:          toAPICatalogItem(line.Item),
			Quantity:      line.Quantity,
			SubtotalCents: subtotal.Cents,
			Subtotal:      subtotal.Display(),
		})
	}
	return Cart{
		Lines:      lines,
		TotalCents: v.Total.Cents,
		Total:      v.Total.Display(),
		Locked:     v.Locked,
	}
}

func ToAPICheckout(v services.CheckoutView) Checkout {
	return Checkout{
		Details: PaymentDetails{
			CardNumber:     v.Details.CardNumber,
			CardHolderName: v.Details.CardHolderName,
			SecurityCode:   v.Details.SecurityCode,
			Installments:   v.Details.InstallmentCount,
			StoreCode:      v.Details.StoreCode,
			OperatorCode:   v.Details.OperatorCode,
		},
		CardNetwork:      v.CardNetwork.Ptr(),
		CardNetworkLabel: v.CardNetwork.Label(),
		TotalCents:       v.Total.Cents,
		Total:            v.Total.Display(),
		Installment: Installment{
			Count:   v.Quote.Count,
			Amount:  v.Quote.Amount.StringFixed(2),
			Display: v.Quote.String(),
		},
		Status:       string(v.Status),
		Failure:      toAPIFailure(v.Reason),
		Notification: toAPINotification(v.Notification),
	}
}

func ToAPISubmitResult(r services.SubmitResult) SubmitResult {
	return SubmitResult{
		AttemptID:    r.AttemptID,
		Status:       string(r.Status),
		Ignored:      r.Ignored,
		Failure:      toAPIFailure(r.Reason),
		Notification: toAPINotification(r.Notification),
	}
}

func ToAPIAttempts(attempts []*domain.PaymentAttempt) []PaymentAttempt {
	out := make([]PaymentAttempt, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, PaymentAttempt{
			ID:           a.ID,
			OperatorCode: a.OperatorCode,
			StoreCode:    a.StoreCode,
			CardLast4:    a.CardLast4,
			CardNetwork:  a.CardNetwork.Ptr(),
			AmountCents:  a.AmountCents,
			Installments: a.Installments,
			Status:       string(a.Status),
			Resposta:     a.Resposta,
			Detalhes:     a.Detalhes,
			CreatedAt:    a.CreatedAt,
			CompletedAt:  a.CompletedAt,
		})
	}
	return out
}

func toAPIFailure(r *domain.FailureReason) *FailureReason {
	if r == nil {
		return nil
	}
	return &FailureReason{Resposta: r.Resposta, Detalhes: r.Detalhes, Message: r.String()}
}

func toAPINotification(n *domain.Notification) *Notification {
	if n == nil {
		return nil
	}
	return &Notification{Kind: string(n.Kind), Message: n.Message, RaisedAt: n.RaisedAt}
}
