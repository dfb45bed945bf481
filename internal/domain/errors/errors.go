package errors

import "errors"

// Erros do formulário da camiseta grátis.
// A mensagem é a chave i18n do aviso exibido após o redirect
// (internal/infrastructure/i18n/locales/*.json).
var (
	ErrConsentRequired = errors.New("notice.consent_required")
	ErrMissingFields   = errors.New("notice.missing_fields")
	ErrInvalidEmail    = errors.New("notice.invalid_email")
)

// Erros do checkout; a mensagem é a chave do detalhe do problem+json
var (
	ErrEmptyCart           = errors.New("error.checkout.empty_cart")
	ErrTooManyItems        = errors.New("error.checkout.too_many_items")
	ErrInvalidLineItem     = errors.New("error.checkout.invalid_line_item")
	ErrCheckoutUnavailable = errors.New("error.checkout.unavailable")
	ErrPaymentProvider     = errors.New("error.checkout.provider")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation  = "/problems/validation-error"
	ProblemTypeNotFound    = "/problems/not-found"
	ProblemTypeUnavailable = "/problems/service-unavailable"
	ProblemTypeBadGateway  = "/problems/bad-gateway"
	ProblemTypeInternal    = "/problems/internal-error"
	ProblemTypeMethod      = "/problems/method-not-allowed"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Params  map[string]interface{}
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
