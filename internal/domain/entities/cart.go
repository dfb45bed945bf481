package entities

import "sort"

// Limites aceitos pelo provedor de pagamento
const (
	MaxLineItems  = 100
	MaxQuantity   = 999
	MaxPriceCents = 99_999_999
)

// LineItem é um item do carrinho já validado (valores em centavos)
type LineItem struct {
	Name       string
	PriceCents int64
	Quantity   int64
	IsShirt    bool
}

// Cart agrupa os itens de um checkout
type Cart struct {
	Currency string
	Items    []LineItem
}

// ShirtUnits conta as camisetas do carrinho
func (c Cart) ShirtUnits() int64 {
	var units int64
	for _, it := range c.Items {
		if it.IsShirt {
			units += it.Quantity
		}
	}
	return units
}

// BuyTwoGetTwoDiscount calcula o desconto "leve 4, pague 2":
// a cada grupo de 4 camisetas, as 2 mais baratas saem de graça.
// Os itens são percorridos do mais barato ao mais caro, sem expandir as quantidades.
func (c Cart) BuyTwoGetTwoDiscount() (discount int64, free int64) {
	free = (c.ShirtUnits() / 4) * 2
	if free == 0 {
		return 0, 0
	}

	shirts := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.IsShirt {
			shirts = append(shirts, it)
		}
	}
	sort.SliceStable(shirts, func(i, j int) bool { return shirts[i].PriceCents < shirts[j].PriceCents })

	remaining := free
	for _, it := range shirts {
		if remaining == 0 {
			break
		}
		take := min(it.Quantity, remaining)
		discount += take * it.PriceCents
		remaining -= take
	}
	return discount, free
}
