package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

const (
	VariantCompact = "compact"
	VariantFull    = "full"
)

func item(id int, name, icon string, cents int64) domain.CatalogItem {
	return domain.CatalogItem{ID: domain.ItemID(id), Name: name, Icon: icon, UnitPrice: domain.Money{Cents: cents}}
}

// CompactCatalog is the two-item storefront.
func CompactCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		item(1, "TV 4k", "Tv", 200000),
		item(2, "PC gamer", "Computer", 420000),
	}
}

// FullCatalog is the nine-item storefront.
func FullCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		item(1, "TV 4k", "Tv", 20000),
		item(2, "PC gamer", "Computer", 42000),
		item(3, "Smartphone", "StayPrimaryPortrait", 12300),
		item(4, "Alarme smart", "AccessAlarm", 9800),
		item(5, "Avião smart", "AirplanemodeActive", 84000),
		item(6, "Clipe de papel smart", "AttachFile", 990),
		item(7, "Headset gamer", "Headset", 11200),
		item(8, "Dado gamer", "Casino", 1500),
		item(9, "Geladeira smart", "Kitchen", 31000),
	}
}

// SeedFor returns the seed list of a named variant.
func SeedFor(variant string) ([]domain.CatalogItem, error) {
	switch variant {
	case VariantCompact:
		return CompactCatalog(), nil
	case VariantFull, "":
		return FullCatalog(), nil
	default:
		return nil, fmt.Errorf("unknown catalog variant %q", variant)
	}
}

// CatalogSource serves a fixed seed list.
type CatalogSource struct {
	items []domain.CatalogItem
}

func NewCatalogSource(items []domain.CatalogItem) *CatalogSource {
	return &CatalogSource{items: slices.Clone(items)}
}

func (s *CatalogSource) Load(_ context.Context) ([]domain.CatalogItem, error) {
	return slices.Clone(s.items), nil
}
