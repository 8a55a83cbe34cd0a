package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/pizzaria-erp/go-api-server/internal/shared/taxid"
)

func ValidateCPF(fl validator.FieldLevel) bool {
	return taxid.ValidCPF(fl.Field().String())
}

func ValidateCNPJ(fl validator.FieldLevel) bool {
	return taxid.ValidCNPJ(fl.Field().String())
}

// ValidateDocument accepts either a CPF or a CNPJ.
func ValidateDocument(fl validator.FieldLevel) bool {
	return taxid.ValidDocument(fl.Field().String())
}

func ValidateAccessKey(fl validator.FieldLevel) bool {
	return taxid.ValidAccessKey(fl.Field().String())
}
