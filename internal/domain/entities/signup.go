package entities

import (
	"time"

	"github.com/rafabene/unusualpills/internal/domain/valueobjects"
)

// DefaultCountry é usado quando o formulário não informa o país
const DefaultCountry = "USA"

// TimestampLayout é o formato (UTC) gravado em consent_timestamp e created_at
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Signup representa o cadastro de um visitante para a camiseta grátis
type Signup struct {
	ID               uint
	Email            valueobjects.Email
	FirstName        string
	LastName         string
	Address1         string
	Address2         string
	City             string
	State            string
	PostalCode       string
	Country          string
	Phone            string
	MarketingConsent bool
	ConsentTimestamp string
	ConsentIP        string
	CreatedAt        string
}

// GrantConsent registra o consentimento de marketing no instante informado.
// CreatedAt recebe o mesmo valor, mas só é gravado na primeira inserção.
func (s *Signup) GrantConsent(at time.Time, ip string) {
	ts := FormatTimestamp(at)
	s.MarketingConsent = true
	s.ConsentTimestamp = ts
	s.ConsentIP = ip
	s.CreatedAt = ts
}

// FormatTimestamp formata um instante no layout persistido
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
