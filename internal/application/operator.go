package application

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// PayRequest is the body of POST /{operatorCode}/pay.
type PayRequest struct {
	NumeroCartao    string  `json:"numero_cartao"`
	NomeCliente     string  `json:"nome_cliente"`
	Bandeira        *string `json:"bandeira"`
	CodSeguranca    string  `json:"cod_seguranca"`
	ValorEmCentavos int64   `json:"valor_em_centavos"`
	Parcelas        int     `json:"parcelas"`
	CodLoja         string  `json:"cod_loja"`
	CodOp           string  `json:"cod_op"`
}

// PayResponse keeps the operator acknowledgment opaque.
type PayResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// OperatorErrorResponse is the failure body returned by the operator.
type OperatorErrorResponse struct {
	Resposta string `json:"resposta"`
	Detalhes string `json:"detalhes"`
}

type OperatorError struct {
	Resposta   string
	Detalhes   string
	StatusCode int
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("operator error [%s]: %s (status: %d)", e.Resposta, e.Detalhes, e.StatusCode)
}

func IsOperatorError(err error) (*OperatorError, bool) {
	var opErr *OperatorError
	ok := errors.As(err, &opErr)
	return opErr, ok
}

const genericFailureLabel = "erro"

// FailureReasonFrom turns a failed Pay call into the reason shown to the user.
// Structured operator errors are surfaced verbatim.
func FailureReasonFrom(err error) domain.FailureReason {
	if opErr, ok := IsOperatorError(err); ok {
		return domain.FailureReason{Resposta: opErr.Resposta, Detalhes: opErr.Detalhes}
	}
	return domain.FailureReason{Resposta: genericFailureLabel, Detalhes: err.Error()}
}

// NewPayRequest builds the operator payload from a payment command.
func NewPayRequest(cmd domain.PaymentCommand) PayRequest {
	return PayRequest{
		NumeroCartao:    cmd.CardNumber,
		NomeCliente:     cmd.CardHolderName,
		Bandeira:        cmd.CardNetwork.Ptr(),
		CodSeguranca:    cmd.SecurityCode,
		ValorEmCentavos: cmd.Amount.Cents,
		Parcelas:        cmd.Installments,
		CodLoja:         cmd.StoreCode,
		CodOp:           cmd.OperatorCode,
	}
}
