package finance

import (
	"net/http"

	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
)

const (
	invalidPercentages = "CONDITION_INVALID_PERCENTAGES" // errInfo
	duplicateNumber    = "CONDITION_DUPLICATE_NUMBER"    // errInfo
	accountNotOpen     = "ACCOUNT_NOT_OPEN"              // errInfo
	invalidDueDate     = "ACCOUNT_INVALID_DUE_DATE"      // errInfo
)

var (
	ErrInvalidPercentages = sharedError.NewDomainError(invalidPercentages)
	ErrDuplicateNumber    = sharedError.NewDomainError(duplicateNumber)
	ErrAccountNotOpen     = sharedError.NewDomainError(accountNotOpen)
	ErrInvalidDueDate     = sharedError.NewDomainError(invalidDueDate)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidPercentages, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "FINANCE-001",
		Message: "A soma dos percentuais das parcelas deve ser 100.",
	})

	sharedError.RegisterDomainErrorResponse(duplicateNumber, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "FINANCE-002",
		Message: "Número de parcela repetido.",
	})

	sharedError.RegisterDomainErrorResponse(accountNotOpen, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "FINANCE-003",
		Message: "A conta não está em aberto.",
	})

	sharedError.RegisterDomainErrorResponse(invalidDueDate, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "FINANCE-004",
		Message: "O vencimento não pode ser anterior à emissão.",
	})
}
