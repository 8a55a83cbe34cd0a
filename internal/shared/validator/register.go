package validator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("não foi possível obter o motor de validação")
	}
	return v, nil
}

var validations = map[string]validator.Func{
	"phone":   ValidatePhone,
	"cpf":     ValidateCPF,
	"cnpj":    ValidateCNPJ,
	"cpfcnpj": ValidateDocument,
	"nfekey":  ValidateAccessKey,
}

// RegisterAll registers all common validators defined in this package
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("falha ao obter validator: %w", err)
	}

	names := make([]string, 0, len(validations))
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("falha ao registrar validator %s: %w", tag, err)
		}
		names = append(names, tag)
	}

	slog.Debug("Validators registrados", "validators", strings.Join(names, ","))
	return nil
}
