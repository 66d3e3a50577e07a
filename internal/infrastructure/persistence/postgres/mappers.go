package postgres

import (
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// toDomainAttempt: maps db model to domain entity
func toDomainAttempt(m AttemptModel) *domain.PaymentAttempt {
	var network domain.CardNetwork
	if m.CardNetwork != nil {
		network = domain.CardNetwork(*m.CardNetwork)
	}
	return &domain.PaymentAttempt{
		ID:           m.ID,
		OperatorCode: m.OperatorCode,
		StoreCode:    m.StoreCode,
		CardLast4:    m.CardLast4,
		CardNetwork:  network,
		AmountCents:  m.AmountCents,
		Installments: m.Installments,
		Status:       domain.SubmissionStatus(m.Status),
		Resposta:     m.Resposta,
		Detalhes:     m.Detalhes,
		CreatedAt:    m.CreatedAt,
		CompletedAt:  m.CompletedAt,
	}
}

// toAttemptModel: maps domain entity to db model
func toAttemptModel(a *domain.PaymentAttempt) AttemptModel {
	return AttemptModel{
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
	}
}

func toDomainCatalogItem(m CatalogItemModel) domain.CatalogItem {
	return domain.CatalogItem{
		ID:        domain.ItemID(m.ID),
		Name:      m.Name,
		Icon:      m.Icon,
		UnitPrice: domain.Money{Cents: m.UnitPrice},
	}
}
