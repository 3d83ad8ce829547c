package domain

// Нормализованное событие платежного шлюза
const (
	PaymentSucceeded = "payment_intent.succeeded"
	PaymentFailed    = "payment_intent.payment_failed"
)

type PaymentEvent struct {
	Type            string
	PaymentIntentID string
}

// События провайдера идентификации
const (
	IdentityCreated = "user.created"
	IdentityUpdated = "user.updated"
	IdentityDeleted = "user.deleted"
)

type IdentityEvent struct {
	Type     string
	UserID   string
	Name     string
	Email    string
	ImageURL string
}
