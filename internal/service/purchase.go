package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coursemarket/internal/domain"
	"coursemarket/internal/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseService — движок сверки покупок. Создает pending-покупку с
// checkout-сессией и доводит ее до терминального статуса по событиям
// платежного вебхука.
type PurchaseService struct {
	users     UserStore
	courses   CourseStore
	purchases PurchaseStore
	gateway   PaymentGateway
	currency  string
}

func NewPurchaseService(users UserStore, courses CourseStore, purchases PurchaseStore, gateway PaymentGateway, currency string) *PurchaseService {
	return &PurchaseService{
		users:     users,
		courses:   courses,
		purchases: purchases,
		gateway:   gateway,
		currency:  currency,
	}
}

// Initiate создает pending-покупку и возвращает URL hosted-checkout.
// Каждый вызов — новая pending-строка, слепые ретраи копят сироты.
func (s *PurchaseService) Initiate(ctx context.Context, userID string, courseID uuid.UUID, origin string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		return "", err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: course %s", domain.ErrNotFound, courseID)
		}
		return "", err
	}

	purchase := &domain.Purchase{
		ID:       uuid.New(),
		CourseID: course.ID,
		UserID:   user.ID,
		Amount:   course.DiscountedPrice(),
		Status:   domain.PurchasePending,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return "", err
	}

	return s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		PurchaseID:  purchase.ID.String(),
		CourseTitle: course.Title,
		Amount:      purchase.Amount,
		Currency:    s.currency,
		SuccessURL:  origin + "/loading/my-enrollments",
		CancelURL:   origin + "/",
	})
}

// HandlePaymentEvent применяет проверенное событие шлюза. Ошибка отсюда
// превращается в HTTP 5xx, и шлюз доставит событие повторно; nil — в ack,
// после которого ретраев не будет.
func (s *PurchaseService) HandlePaymentEvent(ctx context.Context, event domain.PaymentEvent) error {
	switch event.Type {
	case domain.PaymentSucceeded:
		purchaseID, err := s.resolvePurchase(ctx, event.PaymentIntentID)
		if err != nil {
			return err
		}
		return s.purchases.Complete(ctx, purchaseID)

	case domain.PaymentFailed:
		purchaseID, err := s.resolvePurchase(ctx, event.PaymentIntentID)
		if err != nil {
			return err
		}
		return s.purchases.Fail(ctx, purchaseID)

	default:
		// Неизвестные типы подтверждаем и игнорируем
		log.Printf("unhandled payment event type: %s", event.Type)
		return nil
	}
}

func (s *PurchaseService) resolvePurchase(ctx context.Context, paymentIntentID string) (uuid.UUID, error) {
	metadata, err := s.gateway.SessionMetadata(ctx, paymentIntentID)
	if err != nil {
		return uuid.Nil, err
	}
	raw, ok := metadata["purchaseId"]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: session metadata has no purchaseId", domain.ErrInvalidInput)
	}
	purchaseID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad purchaseId %q", domain.ErrInvalidInput, raw)
	}
	return purchaseID, nil
}
