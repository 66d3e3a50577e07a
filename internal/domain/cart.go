package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// CatalogItem is a purchasable item from the fixed seed list.
type CatalogItem struct {
	ID        ItemID
	Name      string
	Icon      string
	UnitPrice Money
}

// MaxQuantity is the largest quantity a cart line accepts. Larger input is
// ignored like any other rejected quantity.
const MaxQuantity = 999

// CartLine is a catalog item currently in the cart. Quantity is always within
// 1..MaxQuantity.
type CartLine struct {
	Item     CatalogItem
	Quantity int
}

// Subtotal is unit price times quantity. Lines held by a CartEngine never
// overflow; a line built by hand with an out-of-range quantity panics.
func (l CartLine) Subtotal() Money {
	subtotal, err := l.Item.UnitPrice.Times(l.Quantity)
	if err != nil {
		panic(fmt.Sprintf("cart line %d: %v", l.Item.ID, err))
	}
	return subtotal
}

// CartEngine owns the partition of the catalog into the available pool and the
// cart. Every item is in exactly one of the two at any time.
type CartEngine struct {
	catalog   []CatalogItem
	available []CatalogItem
	cart      []CartLine
	locked    bool
}

// NewCartEngine starts a session with every seed item available, in seed order.
func NewCartEngine(seed []CatalogItem) (*CartEngine, error) {
	seen := make(map[ItemID]struct{}, len(seed))
	for _, item := range seed {
		if _, dup := seen[item.ID]; dup {
			return nil, NewInvalidCatalogError("duplicate item id " + strconv.Itoa(int(item.ID)))
		}
		if item.UnitPrice.Cents < 0 {
			return nil, NewInvalidCatalogError("negative price for item " + strconv.Itoa(int(item.ID)))
		}
		seen[item.ID] = struct{}{}
	}
	if _, err := maxTotal(seed); err != nil {
		return nil, NewInvalidCatalogError("total at maximum quantities overflows")
	}

	return &CartEngine{
		catalog:   slices.Clone(seed),
		available: slices.Clone(seed),
		cart:      make([]CartLine, 0, len(seed)),
	}, nil
}

// Catalog returns the full fixed catalog.
func (e *CartEngine) Catalog() []CatalogItem {
	return slices.Clone(e.catalog)
}

// Available returns the available pool in display order.
func (e *CartEngine) Available() []CatalogItem {
	return slices.Clone(e.available)
}

// Lines returns the cart lines in insertion order.
func (e *CartEngine) Lines() []CartLine {
	return slices.Clone(e.cart)
}

func (e *CartEngine) IsEmpty() bool {
	return len(e.cart) == 0
}

// Lock rejects every mutation until Unlock. Held while a payment is in flight.
func (e *CartEngine) Lock() {
	e.locked = true
}

func (e *CartEngine) Unlock() {
	e.locked = false
}

func (e *CartEngine) IsLocked() bool {
	return e.locked
}

// MoveToCart relocates an available item to the end of the cart with quantity 1.
func (e *CartEngine) MoveToCart(id ItemID) error {
	if e.locked {
		return ErrSubmissionInFlight
	}
	idx := slices.IndexFunc(e.available, func(item CatalogItem) bool { return item.ID == id })
	if idx < 0 {
		return NewItemNotAvailableError(id)
	}

	item := e.available[idx]
	e.available = slices.Delete(e.available, idx, idx+1)
	e.cart = append(e.cart, CartLine{Item: item, Quantity: 1})
	return nil
}

// RemoveFromCart drops the line and appends its item to the end of the
// available pool. Its seed position is not restored.
func (e *CartEngine) RemoveFromCart(id ItemID) error {
	if e.locked {
		return ErrSubmissionInFlight
	}
	idx := e.lineIndex(id)
	if idx < 0 {
		return NewItemNotInCartError(id)
	}

	line := e.cart[idx]
	line.Quantity = 1
	e.cart = slices.Delete(e.cart, idx, idx+1)
	e.available = append(e.available, line.Item)
	return nil
}

// SetQuantity replaces the line quantity when value is within 1..MaxQuantity.
// Anything else leaves the line untouched; the returned bool reports whether it
// changed.
func (e *CartEngine) SetQuantity(id ItemID, value int) (bool, error) {
	if e.locked {
		return false, ErrSubmissionInFlight
	}
	idx := e.lineIndex(id)
	if idx < 0 {
		return false, NewItemNotInCartError(id)
	}
	if value <= 0 || value > MaxQuantity {
		return false, nil
	}

	e.cart[idx].Quantity = value
	return true, nil
}

// SetQuantityInput is SetQuantity for raw user input. Non-numeric text is
// ignored the same way non-positive numbers are.
func (e *CartEngine) SetQuantityInput(id ItemID, raw string) (bool, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		value = 0
	}
	return e.SetQuantity(id, value)
}

// Total is the sum of unit price times quantity over the cart lines. The seed
// is checked at construction to fit at MaxQuantity for every item, so the sum
// cannot overflow.
func (e *CartEngine) Total() Money {
	var total Money
	for _, line := range e.cart {
		next, err := total.Add(line.Subtotal())
		if err != nil {
			panic(fmt.Sprintf("cart total: %v", err))
		}
		total = next
	}
	return total
}

// maxTotal is the cart total with every seed item at MaxQuantity.
func maxTotal(seed []CatalogItem) (Money, error) {
	var total Money
	for _, item := range seed {
		line, err := item.UnitPrice.Times(MaxQuantity)
		if err != nil {
			return Money{}, err
		}
		if total, err = total.Add(line); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

func (e *CartEngine) lineIndex(id ItemID) int {
	return slices.IndexFunc(e.cart, func(line CartLine) bool { return line.Item.ID == id })
}
