package valueobjects

import (
	"encoding/hex"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrEmptyEmail   = errors.New("email is empty")
	ErrInvalidEmail = errors.New("invalid email format")
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email é um value object que guarda o email já normalizado (trim + lowercase).
// A checagem de formato é opcional, ver IsWellFormed.
type Email struct {
	value string
}

// NewEmail normaliza o email e recusa apenas valores vazios
func NewEmail(email string) (Email, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Email{}, ErrEmptyEmail
	}
	return Email{value: email}, nil
}

// NewStrictEmail normaliza e exige um formato válido
func NewStrictEmail(email string) (Email, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Email{}, err
	}
	if !e.IsWellFormed() {
		return Email{}, ErrInvalidEmail
	}
	return e, nil
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// IsWellFormed valida o formato do email
func (e Email) IsWellFormed() bool {
	if len(e.value) < 3 || len(e.value) > 254 {
		return false
	}
	return emailPattern.MatchString(e.value)
}

// Fingerprint retorna um identificador estável para logs, sem expor o endereço
func (e Email) Fingerprint() string {
	sum := blake2b.Sum256([]byte(e.value))
	return hex.EncodeToString(sum[:8])
}
