package partner

import (
	"net/http"

	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
)

const (
	documentMismatch  = "PARTNER_DOCUMENT_MISMATCH"  // errInfo
	documentDuplicate = "PARTNER_DOCUMENT_DUPLICATE" // errInfo
	plateDuplicate    = "VEHICLE_PLATE_DUPLICATE"    // errInfo
)

var (
	ErrDocumentMismatch  = sharedError.NewDomainError(documentMismatch)
	ErrDocumentDuplicate = sharedError.NewDomainError(documentDuplicate)
	ErrPlateDuplicate    = sharedError.NewDomainError(plateDuplicate)
)

func init() {
	sharedError.RegisterDomainErrorResponse(documentMismatch, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "PARTNER-001",
		Message: "Pessoa física exige CPF e pessoa jurídica exige CNPJ.",
	})

	sharedError.RegisterDomainErrorResponse(documentDuplicate, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "PARTNER-002",
		Message: "Já existe um cadastro com este CPF/CNPJ.",
	})

	sharedError.RegisterDomainErrorResponse(plateDuplicate, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "PARTNER-003",
		Message: "Já existe um veículo com esta placa.",
	})
}
