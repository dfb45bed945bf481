package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/unusualpills/internal/services"
)

// SignupForm representa o POST do formulário /free-shirt
type SignupForm struct {
	MarketingConsent string `form:"marketing_consent"`
	Email            string `form:"email"`
	FirstName        string `form:"first_name"`
	LastName         string `form:"last_name"`
	Address1         string `form:"address1"`
	Address2         string `form:"address2"`
	City             string `form:"city"`
	State            string `form:"state"`
	PostalCode       string `form:"postal_code"`
	Country          string `form:"country"`
	Phone            string `form:"phone"`
}

// ToInput converte o formulário para a entrada do serviço
func (f SignupForm) ToInput(clientIP string) services.SubmitSignupInput {
	return services.SubmitSignupInput{
		MarketingConsent: f.MarketingConsent,
		Email:            f.Email,
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Address1:         f.Address1,
		Address2:         f.Address2,
		City:             f.City,
		State:            f.State,
		PostalCode:       f.PostalCode,
		Country:          f.Country,
		Phone:            f.Phone,
		ClientIP:         clientIP,
	}
}

// PageView é o modelo entregue aos templates HTML
type PageView struct {
	Lang    string
	Title   string
	Message string
	Notices []string
	Labels  map[string]string
}

// signupFormFields são os campos do formulário com rótulo traduzido em "form.<campo>"
var signupFormFields = []string{
	"email", "first_name", "last_name", "address1", "address2", "city",
	"state", "postal_code", "country", "phone", "consent", "submit",
}

// SignupFormLabels traduz os rótulos do formulário no idioma da requisição
func SignupFormLabels(c *gin.Context) map[string]string {
	labels := make(map[string]string, len(signupFormFields))
	for _, field := range signupFormFields {
		labels[field] = T(c, "form."+field)
	}
	return labels
}

// NewPageView monta a view com o título traduzido
func NewPageView(c *gin.Context, titleKey string) PageView {
	return PageView{
		Lang:  GetLanguage(c),
		Title: T(c, titleKey),
	}
}
