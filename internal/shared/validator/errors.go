package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/pizzaria-erp/go-api-server/internal/shared/error"

	"github.com/go-playground/validator/v10"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// só o primeiro erro é devolvido ao cliente
	fieldErr := validationErrors[0]
	message := getErrorMessage(fieldErr)

	resp := sharedError.ValidationFailed
	resp.Message = message
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo '%s' é obrigatório.", fe.Field())
	case "email":
		return "E-mail em formato inválido."
	case "min":
		return fmt.Sprintf("'%s' deve ter no mínimo %s.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("'%s' deve ter no máximo %s.", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("'%s' deve ter exatamente %s caracteres.", fe.Field(), fe.Param())
	case "phone":
		return "Telefone inválido. Use (DD) 9XXXX-XXXX ou (DD) XXXX-XXXX."
	case "cpf":
		return "CPF inválido."
	case "cnpj":
		return "CNPJ inválido."
	case "cpfcnpj":
		return "CPF/CNPJ inválido."
	case "nfekey":
		return "Chave de acesso da NF-e inválida."
	case "oneof":
		return fmt.Sprintf("'%s' deve ser um de: %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("O campo '%s' é inválido.", fe.Field())
	}
}
