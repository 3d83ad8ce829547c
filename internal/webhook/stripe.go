package webhook

import (
	"encoding/json"
	"fmt"

	"coursemarket/internal/domain"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// StripeVerifier проверяет заголовок stripe-signature по сырому телу запроса.
// Тело нельзя парсить до проверки подписи.
type StripeVerifier struct {
	secret string
}

func NewStripeVerifier(secret string) *StripeVerifier {
	return &StripeVerifier{secret: secret}
}

func (v *StripeVerifier) Verify(payload []byte, sigHeader string) (domain.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, v.secret)
	if err != nil {
		return domain.PaymentEvent{}, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	switch event.Type {
	case domain.PaymentSucceeded, domain.PaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return domain.PaymentEvent{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return domain.PaymentEvent{Type: event.Type, PaymentIntentID: pi.ID}, nil
	}

	// Неизвестные типы отдаем как есть: выше их подтвердят и проигнорируют
	return domain.PaymentEvent{Type: event.Type}, nil
}
