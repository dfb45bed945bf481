package stripe

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/rafabene/unusualpills/internal/domain/ports"
)

// Gateway implementa ports.PaymentGateway usando a API do Stripe
type Gateway struct {
	api    *client.API
	logger ports.Logger
}

// NewGateway cria um gateway autenticado com a secret key
func NewGateway(secretKey string, logger ports.Logger) ports.PaymentGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Gateway{
		api:    api,
		logger: logger,
	}
}

func (g *Gateway) CreateCoupon(ctx context.Context, req ports.CouponRequest) (string, error) {
	params := &stripe.CouponParams{
		AmountOff:      stripe.Int64(req.AmountOff),
		Currency:       stripe.String(req.Currency),
		Duration:       stripe.String(string(stripe.CouponDurationOnce)),
		Name:           stripe.String(req.Name),
		MaxRedemptions: stripe.Int64(req.MaxRedemptions),
		RedeemBy:       stripe.Int64(req.RedeemBy.Unix()),
	}
	params.Context = ctx

	coupon, err := g.api.Coupons.New(params)
	if err != nil {
		return "", fmt.Errorf("create coupon: %w", err)
	}

	g.logger.Info("stripe coupon created", "coupon_id", coupon.ID, "amount_off", req.AmountOff)
	return coupon.ID, nil
}

func (g *Gateway) CreateSession(ctx context.Context, req ports.SessionRequest) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
			AdjustableQuantity: &stripe.CheckoutSessionLineItemAdjustableQuantityParams{
				Enabled: stripe.Bool(true),
				Minimum: stripe.Int64(1),
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(req.AllowedCountries),
		},
	}
	// O Stripe recusa discounts junto com allow_promotion_codes
	if req.CouponID != "" {
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(req.CouponID)},
		}
	} else if req.AllowPromotionCodes {
		params.AllowPromotionCodes = stripe.Bool(true)
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	g.logger.Info("stripe checkout session created", "session_id", session.ID)
	return session.URL, nil
}
