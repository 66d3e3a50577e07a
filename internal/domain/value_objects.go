package domain

import (
	"math"
	"math/bits"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (centavos). Arithmetic stays in integers;
// decimals only appear when projecting for display.
type Money struct {
	Cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, NewInvalidAmountError(cents)
	}
	return Money{Cents: cents}, nil
}

// Add returns m + other, or ErrAmountOverflow when the sum leaves int64.
func (m Money) Add(other Money) (Money, error) {
	sum := m.Cents + other.Cents
	if (other.Cents > 0 && sum < m.Cents) || (other.Cents < 0 && sum > m.Cents) {
		return Money{}, ErrAmountOverflow
	}
	return Money{Cents: sum}, nil
}

// Times returns m * quantity. Both operands must be non-negative and the
// product must fit in int64.
func (m Money) Times(quantity int) (Money, error) {
	if m.Cents < 0 {
		return Money{}, NewInvalidAmountError(m.Cents)
	}
	if quantity < 0 {
		return Money{}, NewInvalidAmountError(int64(quantity))
	}
	hi, lo := bits.Mul64(uint64(m.Cents), uint64(quantity))
	if hi != 0 || lo > math.MaxInt64 {
		return Money{}, ErrAmountOverflow
	}
	return Money{Cents: int64(lo)}, nil
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Major returns the amount in major units.
func (m Money) Major() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with two decimals of the major unit, e.g. "205.00".
func (m Money) String() string {
	return m.Major().StringFixed(2)
}

// Display renders the amount with the currency symbol, e.g. "R$ 205.00".
func (m Money) Display() string {
	return "R$ " + m.String()
}

// Split divides the amount into n equal parts in major units. The result is not
// rounded; callers round when displaying. n must be positive: the payment form
// bounds the installment count to 1..12, and a zero count panics.
func (m Money) Split(n int) decimal.Decimal {
	return m.Major().Div(decimal.NewFromInt(int64(n)))
}

// ItemID identifies a catalog item across both pools.
type ItemID int

// CardNetwork is the issuer brand inferred from the card number prefix. The
// zero value means the number is unclassified.
type CardNetwork string

const (
	NetworkMister  CardNetwork = "mister"
	NetworkVista   CardNetwork = "vista"
	NetworkDaciolo CardNetwork = "daciolo"
)

const unclassifiedLabel = "inválida"

func (n CardNetwork) IsClassified() bool {
	return n != ""
}

// Label is the displayed network name, or the "invalid" marker.
func (n CardNetwork) Label() string {
	if !n.IsClassified() {
		return unclassifiedLabel
	}
	return string(n)
}

// Ptr returns nil for an unclassified network so it encodes as JSON null.
func (n CardNetwork) Ptr() *string {
	if !n.IsClassified() {
		return nil
	}
	s := string(n)
	return &s
}
