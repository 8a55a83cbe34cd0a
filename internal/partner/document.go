package partner

import (
	"strings"

	"github.com/pizzaria-erp/go-api-server/internal/shared/taxid"
)

// documentPredicate compares a stored CPF/CNPJ by its digits only.
func documentPredicate(col string) string {
	return "REPLACE(REPLACE(REPLACE(" + col + ", '.', ''), '-', ''), '/', '') = ?"
}

func documentArgs(document string) []any {
	return []any{taxid.Digits(document)}
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), "-", ""))
}
