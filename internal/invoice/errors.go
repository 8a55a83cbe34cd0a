package invoice

import (
	"net/http"

	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
)

const (
	invoiceNotFound    = "INVOICE_NOT_FOUND"   // errInfo
	invoiceDuplicate   = "INVOICE_DUPLICATE"   // errInfo
	invoiceCancelled   = "INVOICE_CANCELLED"   // errInfo
	invalidAccessKey   = "INVOICE_INVALID_KEY" // errInfo
	conditionNotUsable = "INVOICE_CONDITION"   // errInfo
)

var (
	ErrInvoiceNotFound    = sharedError.NewDomainError(invoiceNotFound)
	ErrInvoiceDuplicate   = sharedError.NewDomainError(invoiceDuplicate)
	ErrInvoiceCancelled   = sharedError.NewDomainError(invoiceCancelled)
	ErrInvalidAccessKey   = sharedError.NewDomainError(invalidAccessKey)
	ErrConditionNotUsable = sharedError.NewDomainError(conditionNotUsable)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invoiceNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "INVOICE-001",
		Message: "Nota fiscal não encontrada.",
	})

	sharedError.RegisterDomainErrorResponse(invoiceDuplicate, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "INVOICE-002",
		Message: "Nota fiscal já registrada para este fornecedor.",
	})

	sharedError.RegisterDomainErrorResponse(invoiceCancelled, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "INVOICE-003",
		Message: "Nota fiscal já cancelada.",
	})

	sharedError.RegisterDomainErrorResponse(invalidAccessKey, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "INVOICE-004",
		Message: "Chave de acesso inválida.",
	})

	sharedError.RegisterDomainErrorResponse(conditionNotUsable, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "INVOICE-005",
		Message: "Condição de pagamento inexistente ou inativa.",
	})
}
