// Package taxid validates Brazilian tax identifiers: CPF (natural persons),
// CNPJ (companies) and the 44-digit NFe access key. All checks are
// modulo-11 check digits over the digits of the input; punctuation is ignored.
package taxid

import "strings"

const (
	cpfLength       = 11
	cnpjLength      = 14
	accessKeyLength = 44
)

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF reports whether s holds a CPF with valid check digits.
// Masked ("123.456.789-09") and bare inputs are accepted.
func ValidCPF(s string) bool {
	d := Digits(s)
	if len(d) != cpfLength || !onlyPunctuation(s) || repeated(d) {
		return false
	}

	first := checkDigit(d[:9], weightsFrom(10, 9))
	second := checkDigit(d[:10], weightsFrom(11, 10))
	return int(d[9]-'0') == first && int(d[10]-'0') == second
}

// ValidCNPJ reports whether s holds a CNPJ with valid check digits.
func ValidCNPJ(s string) bool {
	d := Digits(s)
	if len(d) != cnpjLength || !onlyPunctuation(s) || repeated(d) {
		return false
	}

	first := checkDigit(d[:12], cnpjWeights[1:])
	second := checkDigit(d[:13], cnpjWeights)
	return int(d[12]-'0') == first && int(d[13]-'0') == second
}

// ValidDocument accepts either a CPF or a CNPJ, decided by digit count.
func ValidDocument(s string) bool {
	switch len(Digits(s)) {
	case cpfLength:
		return ValidCPF(s)
	case cnpjLength:
		return ValidCNPJ(s)
	default:
		return false
	}
}

// ValidAccessKey checks the NFe access key: 44 digits, the last being the
// modulo-11 check digit of the first 43 with weights cycling 2..9 from the right.
func ValidAccessKey(s string) bool {
	d := Digits(s)
	if len(d) != accessKeyLength || !onlyPunctuation(s) {
		return false
	}

	sum, weight := 0, 2
	for i := accessKeyLength - 2; i >= 0; i-- {
		sum += int(d[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	dv := 11 - sum%11
	if dv >= 10 {
		dv = 0
	}
	return int(d[accessKeyLength-1]-'0') == dv
}

// FormatCPF renders 11 digits as 000.000.000-00; other inputs are returned unchanged.
func FormatCPF(s string) string {
	d := Digits(s)
	if len(d) != cpfLength {
		return s
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// FormatCNPJ renders 14 digits as 00.000.000/0000-00.
func FormatCNPJ(s string) string {
	d := Digits(s)
	if len(d) != cnpjLength {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

var cnpjWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

func weightsFrom(start, n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = start - i
	}
	return w
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// repeated rejects 000.000.000-00 and friends, which pass the arithmetic.
func repeated(d string) bool {
	return strings.Count(d, d[:1]) == len(d)
}

func onlyPunctuation(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '/', r == ' ':
		default:
			return false
		}
	}
	return true
}
