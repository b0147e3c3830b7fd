package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// Códigos de pedido aceitos: R123456, R595531189-dup, LP-12345 etc.
	orderNumberRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	nonDigits        = regexp.MustCompile(`\D`)
)

// IsEmail decide se a busca é por email ou por código de pedido.
func IsEmail(s string) bool {
	return strings.Contains(s, "@") && emailRegex.MatchString(strings.TrimSpace(s))
}

// CleanOrderNumber remove '#', espaços e afins que os clientes colam junto
// do código ("#R123 456" → "R123456").
func CleanOrderNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#")
	s = strings.ReplaceAll(s, "#", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimSpace(s)
}

// SanitizePhone remove tudo que não é dígito.
func SanitizePhone(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// IsValidBRPhone valida telefone brasileiro: 10 ou 11 dígitos (DDD + número),
// com prefixo 55 opcional.
func IsValidBRPhone(s string) bool {
	digits := SanitizePhone(s)
	if strings.HasPrefix(digits, "55") && len(digits) > 11 {
		digits = digits[2:]
	}
	return len(digits) == 10 || len(digits) == 11
}

// QueryValidator valida os parâmetros de busca de pedidos antes de irem
// parar na URL da API externa.
type QueryValidator struct{}

func NewQueryValidator() *QueryValidator {
	return &QueryValidator{}
}

// ValidateTrackQuery valida o termo de busca (código de pedido ou email).
func (v *QueryValidator) ValidateTrackQuery(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("query is required")
	}
	if IsEmail(query) {
		return nil
	}

	cleaned := CleanOrderNumber(query)
	if cleaned == "" {
		return errors.New("order number is empty after cleaning")
	}
	if !orderNumberRegex.MatchString(cleaned) {
		return errors.New("order number contains invalid characters")
	}
	return nil
}

// ValidateCustomerEmail valida o email do cliente logado quando informado.
func (v *QueryValidator) ValidateCustomerEmail(email string) error {
	if email == "" {
		return nil
	}
	if !IsEmail(email) {
		return errors.New("customer_email is not a valid email")
	}
	return nil
}
