package ports

import (
	"context"
	"time"
)

// CouponRequest descreve um cupom de uso único criado no checkout
type CouponRequest struct {
	AmountOff      int64
	Currency       string
	Name           string
	MaxRedemptions int64
	RedeemBy       time.Time
}

// SessionLineItem é um item enviado ao provedor de pagamento
type SessionLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// SessionRequest descreve uma sessão de checkout hospedada
type SessionRequest struct {
	Currency            string
	LineItems           []SessionLineItem
	CouponID            string
	AllowPromotionCodes bool
	AllowedCountries    []string
	SuccessURL          string
	CancelURL           string
}

// PaymentGateway abstrai o provedor de pagamento (Stripe)
type PaymentGateway interface {
	CreateCoupon(ctx context.Context, req CouponRequest) (string, error)
	CreateSession(ctx context.Context, req SessionRequest) (string, error)
}
