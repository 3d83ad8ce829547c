package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// CheckoutParams — все, что нужно шлюзу для hosted-checkout сессии.
// PurchaseID уезжает в metadata и возвращается вебхуком как
// корреляционный токен.
type CheckoutParams struct {
	PurchaseID  string
	CourseTitle string
	Amount      decimal.Decimal
	Currency    string
	SuccessURL  string
	CancelURL   string
}

// StripeGateway оборачивает stripe-go клиент. Передается явно,
// а не глобальным синглтоном, чтобы в тестах подставлять фейк.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.CourseTitle),
					},
					// Stripe принимает сумму в минимальных единицах валюты
					UnitAmount: stripe.Int64(p.Amount.Mul(decimal.NewFromInt(100)).IntPart()),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("purchaseId", p.PurchaseID)

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

// SessionMetadata находит checkout-сессию по payment intent и отдает ее
// метаданные. Так событие платежа сводится обратно к покупке.
func (g *StripeGateway) SessionMetadata(ctx context.Context, paymentIntentID string) (map[string]string, error) {
	params := &stripe.CheckoutSessionListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	iter := g.api.CheckoutSessions.List(params)
	for iter.Next() {
		return iter.CheckoutSession().Metadata, nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list checkout sessions: %w", err)
	}
	return nil, fmt.Errorf("no checkout session for payment intent %s", paymentIntentID)
}
