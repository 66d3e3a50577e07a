package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
)

type CatalogRepository struct {
	db Executor
}

func NewCatalogRepository(db Executor) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Seed makes the stored catalog equal to items, in the given order. Rows are
// upserted and rows missing from items are deleted. The batch runs as one
// implicit transaction.
func (r *CatalogRepository) Seed(ctx context.Context, items []domain.CatalogItem) error {
	upsert := `
		INSERT INTO catalog_items (id, name, icon, unit_price, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			icon       = EXCLUDED.icon,
			unit_price = EXCLUDED.unit_price,
			position   = EXCLUDED.position
	`
	prune := `DELETE FROM catalog_items WHERE NOT (id = ANY($1))`

	ids := make([]int32, 0, len(items))
	batch := &pgx.Batch{}
	for pos, item := range items {
		batch.Queue(upsert, int32(item.ID), item.Name, item.Icon, item.UnitPrice.Cents, pos)
		ids = append(ids, int32(item.ID))
	}
	batch.Queue(prune, ids)

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}
	return nil
}

// Load returns the catalog in display order.
func (r *CatalogRepository) Load(ctx context.Context) ([]domain.CatalogItem, error) {
	query := `
		SELECT id, name, icon, unit_price, position
		FROM catalog_items
		ORDER BY position, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	models, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CatalogItemModel, error) {
		var m CatalogItemModel
		err := row.Scan(&m.ID, &m.Name, &m.Icon, &m.UnitPrice, &m.Position)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(models))
	for _, m := range models {
		items = append(items, toDomainCatalogItem(m))
	}
	return items, nil
}
