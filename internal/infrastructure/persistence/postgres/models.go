package postgres

import (
	"time"
)

// AttemptModel is one row of payment_attempts.
type AttemptModel struct {
	ID           string
	OperatorCode string
	StoreCode    string
	CardLast4    string
	CardNetwork  *string
	AmountCents  int64
	Installments int
	Status       string
	Resposta     *string
	Detalhes     *string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// CatalogItemModel is one row of catalog_items.
type CatalogItemModel struct {
	ID        int
	Name      string
	Icon      string
	UnitPrice int64
	Position  int
}
