package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaskEmail keeps the first character of the mailbox.
// Example: joao.silva@pizzaria.com.br -> j***@pizzaria.com.br
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	username, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if username == "" {
		return "***@" + domain
	}

	_, size := utf8.DecodeRuneInString(username)
	return username[:size] + "***@" + domain
}

// MaskDocument hides a CPF or CNPJ except for its last two digits
// (the check digits). Example: 529.982.247-25 -> *********25
func MaskDocument(document string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, document)
	if len(digits) <= 2 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-2) + digits[len(digits)-2:]
}
