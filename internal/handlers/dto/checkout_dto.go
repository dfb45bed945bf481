package dto

import "github.com/rafabene/unusualpills/internal/services"

// CheckoutItemRequest é um item do carrinho enviado pelo navegador
type CheckoutItemRequest struct {
	Name       string   `json:"name"`
	PriceCents float64  `json:"price_cents"`
	Quantity   *float64 `json:"quantity"`
	IsShirt    bool     `json:"is_shirt"`
	Currency   string   `json:"currency"`
}

// CreateCheckoutRequest representa a requisição de checkout
type CreateCheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// CreateCheckoutResponse contém a URL da sessão hospedada
type CreateCheckoutResponse struct {
	URL string `json:"url"`
}

// ToInput converte a requisição para a entrada do serviço
func (r CreateCheckoutRequest) ToInput(origin, host string) services.CreateCheckoutInput {
	items := make([]services.CheckoutItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = services.CheckoutItemInput{
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
			IsShirt:    it.IsShirt,
			Currency:   it.Currency,
		}
	}
	return services.CreateCheckoutInput{
		Items:  items,
		Origin: origin,
		Host:   host,
	}
}
