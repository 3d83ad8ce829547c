package service

import (
	"context"
	"log"

	"coursemarket/internal/domain"
)

// IdentityService применяет события жизненного цикла пользователя от
// провайдера идентификации.
type IdentityService struct {
	users UserStore
}

func NewIdentityService(users UserStore) *IdentityService {
	return &IdentityService{users: users}
}

func (s *IdentityService) HandleEvent(ctx context.Context, event domain.IdentityEvent) error {
	switch event.Type {
	case domain.IdentityCreated:
		// Upsert: повторная доставка created не ошибка
		return s.users.Upsert(ctx, &domain.User{
			ID:       event.UserID,
			Name:     event.Name,
			Email:    event.Email,
			ImageURL: event.ImageURL,
		})

	case domain.IdentityUpdated:
		// Только профиль; записи на курсы не трогаем
		return s.users.UpdateProfile(ctx, event.UserID, event.Name, event.Email, event.ImageURL)

	case domain.IdentityDeleted:
		// Покупки и прогресс остаются осиротевшими ссылками
		return s.users.Delete(ctx, event.UserID)

	default:
		log.Printf("unhandled identity event type: %s", event.Type)
		return nil
	}
}
