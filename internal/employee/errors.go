package employee

import (
	"net/http"

	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"
)

const (
	employeeNotFound = "EMPLOYEE_NOT_FOUND"         // errInfo
	emailDuplicate   = "EMPLOYEE_EMAIL_DUPLICATE"   // errInfo
	cpfDuplicate     = "EMPLOYEE_CPF_DUPLICATE"     // errInfo
	invalidDismissal = "EMPLOYEE_INVALID_DISMISSAL" // errInfo
)

var (
	ErrEmployeeNotFound = sharedError.NewDomainError(employeeNotFound)
	ErrEmailDuplicate   = sharedError.NewDomainError(emailDuplicate)
	ErrCPFDuplicate     = sharedError.NewDomainError(cpfDuplicate)
	ErrInvalidDismissal = sharedError.NewDomainError(invalidDismissal)
)

func init() {
	sharedError.RegisterDomainErrorResponse(employeeNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "EMPLOYEE-001",
		Message: "Funcionário não encontrado.",
	})

	sharedError.RegisterDomainErrorResponse(emailDuplicate, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "EMPLOYEE-002",
		Message: "Já existe um funcionário com este e-mail.",
	})

	sharedError.RegisterDomainErrorResponse(cpfDuplicate, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "EMPLOYEE-003",
		Message: "Já existe um funcionário com este CPF.",
	})

	sharedError.RegisterDomainErrorResponse(invalidDismissal, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "EMPLOYEE-004",
		Message: "A data de demissão não pode ser anterior à admissão.",
	})
}
