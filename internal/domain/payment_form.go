package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names match the keys of the payment form.
type Field string

const (
	FieldCardNumber   Field = "numero_cartao"
	FieldCardHolder   Field = "nome_cliente"
	FieldSecurityCode Field = "cod_seguranca"
	FieldInstallments Field = "parcelas"
	FieldStoreCode    Field = "cod_loja"
	FieldOperatorCode Field = "operadora"
)

const (
	MinInstallments = 1
	MaxInstallments = 12
)

// FormDefaults are the values a fresh payment form starts with.
type FormDefaults struct {
	StoreCode    string
	OperatorCode string
}

// PaymentDetails is a snapshot of the payment form. The card network is not
// stored; it is derived from CardNumber on every read.
type PaymentDetails struct {
	CardNumber       string
	CardHolderName   string
	SecurityCode     string
	InstallmentCount int
	StoreCode        string
	OperatorCode     string
}

func (d PaymentDetails) CardNetwork() CardNetwork {
	return ClassifyCard(d.CardNumber)
}

// Installment is the read-only per-installment projection of a total.
type Installment struct {
	Count  int
	Amount decimal.Decimal
}

// String renders the installment line, e.g. "4 x R$ 205.00".
func (i Installment) String() string {
	return fmt.Sprintf("%d x R$ %s", i.Count, i.Amount.StringFixed(2))
}

// PaymentForm owns the payment fields and their input rules.
type PaymentForm struct {
	details PaymentDetails
}

func NewPaymentForm(defaults FormDefaults) *PaymentForm {
	return &PaymentForm{
		details: PaymentDetails{
			InstallmentCount: MinInstallments,
			StoreCode:        defaults.StoreCode,
			OperatorCode:     defaults.OperatorCode,
		},
	}
}

func (f *PaymentForm) Details() PaymentDetails {
	return f.details
}

// UpdateField sets one field. Input that the field does not accept is dropped
// and the previous value kept; only an unknown field name is an error.
func (f *PaymentForm) UpdateField(name Field, value string) error {
	switch name {
	case FieldCardNumber:
		if digits, ok := acceptDigits(value, cardNumberDigits); ok {
			f.details.CardNumber = FormatCardNumber(digits)
		}
	case FieldSecurityCode:
		if digits, ok := acceptDigits(value, securityCodeDigits); ok {
			f.details.SecurityCode = digits
		}
	case FieldCardHolder:
		f.details.CardHolderName = strings.ToUpper(value)
	case FieldInstallments:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil && n >= MinInstallments && n <= MaxInstallments {
			f.details.InstallmentCount = n
		}
	case FieldStoreCode:
		f.details.StoreCode = value
	case FieldOperatorCode:
		f.details.OperatorCode = value
	default:
		return NewUnknownFieldError(name)
	}
	return nil
}

// InstallmentQuote splits total over the chosen installment count. The total
// itself is not touched.
func (f *PaymentForm) InstallmentQuote(total Money) Installment {
	n := f.details.InstallmentCount
	return Installment{Count: n, Amount: total.Split(n)}
}
