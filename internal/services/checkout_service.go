package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rafabene/unusualpills/internal/domain/entities"
	domainerrors "github.com/rafabene/unusualpills/internal/domain/errors"
	"github.com/rafabene/unusualpills/internal/domain/ports"
)

const (
	defaultCurrency   = "usd"
	defaultSiteURL    = "https://unusualpills.com"
	discountName      = "Buy 2 Get 2 (auto)"
	couponLifetime    = time.Hour
	checkoutSessionID = "{CHECKOUT_SESSION_ID}"
)

var shippingCountries = []string{"US", "CA"}

// CheckoutOptions configura as URLs de retorno do checkout
type CheckoutOptions struct {
	SiteURL    string
	CancelPath string
}

// CheckoutService monta sessões de pagamento a partir do carrinho
type CheckoutService struct {
	gateway ports.PaymentGateway
	metrics ports.Metrics
	logger  ports.Logger
	options CheckoutOptions
	now     func() time.Time
}

// NewCheckoutService cria um CheckoutService; gateway nil desabilita o checkout
func NewCheckoutService(
	gateway ports.PaymentGateway,
	metrics ports.Metrics,
	logger ports.Logger,
	options CheckoutOptions,
) *CheckoutService {
	if options.CancelPath == "" {
		options.CancelPath = "/merch"
	}

	return &CheckoutService{
		gateway: gateway,
		metrics: metrics,
		logger:  logger.With("component", "checkout_service"),
		options: options,
		now:     time.Now,
	}
}

// CheckoutItemInput é um item como chega do carrinho do navegador
type CheckoutItemInput struct {
	Name       string
	PriceCents float64
	Quantity   *float64
	IsShirt    bool
	Currency   string
}

// CreateCheckoutInput contém o carrinho e a origem da requisição
type CreateCheckoutInput struct {
	Items  []CheckoutItemInput
	Origin string
	Host   string
}

// CheckoutResult é a sessão criada no provedor
type CheckoutResult struct {
	URL          string
	DiscountOff  int64
	FreeShirts   int64
	CouponIssued bool
}

// CreateCheckout valida o carrinho, aplica o "leve 4, pague 2" e cria a sessão
func (s *CheckoutService) CreateCheckout(ctx context.Context, input CreateCheckoutInput) (*CheckoutResult, error) {
	if s.gateway == nil {
		s.metrics.CheckoutFailed("unavailable")
		return nil, domainerrors.ErrCheckoutUnavailable
	}

	cart, err := BuildCart(input.Items)
	if err != nil {
		s.metrics.CheckoutFailed("validation")
		return nil, err
	}

	s.logger.Debug("checkout payload", "items", len(cart.Items), "currency", cart.Currency)

	discount, free := cart.BuyTwoGetTwoDiscount()

	var couponID string
	if discount > 0 {
		couponID, err = s.gateway.CreateCoupon(ctx, ports.CouponRequest{
			AmountOff:      discount,
			Currency:       cart.Currency,
			Name:           discountName,
			MaxRedemptions: 1,
			RedeemBy:       s.now().Add(couponLifetime),
		})
		if err != nil {
			return nil, s.providerFailure(err)
		}
	}

	siteURL := s.resolveSiteURL(input.Origin, input.Host)
	lineItems := make([]ports.SessionLineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		lineItems = append(lineItems, ports.SessionLineItem{
			Name:       it.Name,
			UnitAmount: it.PriceCents,
			Quantity:   it.Quantity,
		})
	}

	url, err := s.gateway.CreateSession(ctx, ports.SessionRequest{
		Currency:            cart.Currency,
		LineItems:           lineItems,
		CouponID:            couponID,
		AllowPromotionCodes: couponID == "",
		AllowedCountries:    shippingCountries,
		SuccessURL:          siteURL + "/thanks?session_id=" + checkoutSessionID,
		CancelURL:           siteURL + s.options.CancelPath,
	})
	if err != nil {
		return nil, s.providerFailure(err)
	}

	s.metrics.CheckoutCreated(couponID != "")
	s.logger.Info("checkout session created",
		"items", len(cart.Items),
		"discount_cents", discount,
		"free_shirts", free,
	)

	return &CheckoutResult{
		URL:          url,
		DiscountOff:  discount,
		FreeShirts:   free,
		CouponIssued: couponID != "",
	}, nil
}

// BuildCart converte e valida os itens recebidos
func BuildCart(items []CheckoutItemInput) (entities.Cart, error) {
	if len(items) == 0 {
		return entities.Cart{}, domainerrors.ErrEmptyCart
	}
	if len(items) > entities.MaxLineItems {
		return entities.Cart{}, domainerrors.ErrTooManyItems
	}

	currency := strings.ToLower(strings.TrimSpace(items[0].Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	cart := entities.Cart{Currency: currency, Items: make([]entities.LineItem, 0, len(items))}
	for idx, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = fmt.Sprintf("Item %d", idx+1)
		}

		if !isPositiveWhole(it.PriceCents, entities.MaxPriceCents) {
			return entities.Cart{}, invalidLineItem(name, fmt.Sprintf("price_cents must be a positive whole number up to %d (got: %v)", entities.MaxPriceCents, it.PriceCents))
		}

		quantity := 1.0
		if it.Quantity != nil && *it.Quantity != 0 {
			quantity = *it.Quantity
		}
		if !isPositiveWhole(quantity, entities.MaxQuantity) {
			return entities.Cart{}, invalidLineItem(name, fmt.Sprintf("quantity must be a positive integer up to %d (got: %v)", entities.MaxQuantity, quantity))
		}

		cart.Items = append(cart.Items, entities.LineItem{
			Name:       name,
			PriceCents: int64(it.PriceCents),
			Quantity:   int64(quantity),
			IsShirt:    it.IsShirt,
		})
	}

	return cart, nil
}

// resolveSiteURL prioriza SITE_URL, depois Origin e por fim o Host da requisição
func (s *CheckoutService) resolveSiteURL(origin, host string) string {
	switch {
	case s.options.SiteURL != "":
		return s.options.SiteURL
	case origin != "":
		return strings.TrimRight(origin, "/")
	case host != "":
		return "https://" + host
	default:
		return defaultSiteURL
	}
}

func (s *CheckoutService) providerFailure(err error) error {
	s.metrics.CheckoutFailed("provider")
	s.logger.Error("payment provider error", "error", err)
	return fmt.Errorf("%w: %v", domainerrors.ErrPaymentProvider, err)
}

func invalidLineItem(name, reason string) error {
	return &domainerrors.DomainError{
		Type:    domainerrors.ProblemTypeValidation,
		Message: fmt.Sprintf("invalid line item %q", name),
		Params:  map[string]interface{}{"Name": name, "Reason": reason},
		Err:     domainerrors.ErrInvalidLineItem,
	}
}

// isPositiveWhole aceita inteiros em (0, limit]; o limite garante a conversão para int64
func isPositiveWhole(v float64, limit int64) bool {
	return v > 0 && v <= float64(limit) && v == math.Trunc(v)
}

// IsCheckoutValidationError indica erros causados pelo carrinho enviado
func IsCheckoutValidationError(err error) bool {
	return errors.Is(err, domainerrors.ErrEmptyCart) ||
		errors.Is(err, domainerrors.ErrTooManyItems) ||
		errors.Is(err, domainerrors.ErrInvalidLineItem)
}
