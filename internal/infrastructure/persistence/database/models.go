package database

// SignupModel é o model GORM para os cadastros da camiseta grátis
type SignupModel struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	Email            string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName        string `gorm:"type:varchar(255);not null"`
	LastName         string `gorm:"type:varchar(255);not null"`
	Address1         string `gorm:"column:address1;type:varchar(255);not null"`
	Address2         string `gorm:"column:address2;type:varchar(255);not null"`
	City             string `gorm:"type:varchar(255);not null"`
	State            string `gorm:"type:varchar(255);not null"`
	PostalCode       string `gorm:"type:varchar(32);not null"`
	Country          string `gorm:"type:varchar(64);not null"`
	Phone            string `gorm:"type:varchar(64);not null"`
	MarketingConsent bool   `gorm:"not null"`
	ConsentTimestamp string `gorm:"type:varchar(32);not null"`
	ConsentIP        string `gorm:"column:consent_ip;type:varchar(64);not null"`
	// gorm só preenche CreatedAt automaticamente para tipos de tempo; aqui é texto
	CreatedAtUTC string `gorm:"column:created_at;type:varchar(32);not null"`
}

func (SignupModel) TableName() string {
	return "users"
}

// upsertColumns são as colunas reescritas quando o email já existe.
// id e created_at ficam de fora.
var upsertColumns = []string{
	"first_name",
	"last_name",
	"address1",
	"address2",
	"city",
	"state",
	"postal_code",
	"country",
	"phone",
	"marketing_consent",
	"consent_timestamp",
	"consent_ip",
}
