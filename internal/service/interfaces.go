package service

import (
	"context"
	"io"

	"coursemarket/internal/domain"
	"coursemarket/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Хранилище как набор узких интерфейсов: сервисы принимают интерфейсы,
// конкретные gorm-репозитории подставляются в main, фейки — в тестах.

type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetWithEnrollments(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, id, name, email, imageURL string) error
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
}

type CourseStore interface {
	ListPublished(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetWithRoster(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	ListByEducator(ctx context.Context, educatorID string) ([]domain.Course, error)
	Create(ctx context.Context, course *domain.Course) error
	UpdateThumbnail(ctx context.Context, id uuid.UUID, url string) error
	SaveRating(ctx context.Context, courseID uuid.UUID, userID string, value int) error
}

type PurchaseStore interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	Complete(ctx context.Context, id uuid.UUID) error
	Fail(ctx context.Context, id uuid.UUID) error
	ListCompletedByCourses(ctx context.Context, courseIDs []uuid.UUID) ([]domain.Purchase, error)
	TotalEarnings(ctx context.Context, courseIDs []uuid.UUID) (decimal.Decimal, error)
}

type ProgressStore interface {
	MarkCompleted(ctx context.Context, userID string, courseID, lectureID uuid.UUID) error
	Get(ctx context.Context, userID string, courseID uuid.UUID) (*domain.CourseProgress, error)
}

// PaymentGateway — платежный шлюз (Stripe в продакшене)
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, p payment.CheckoutParams) (string, error)
	SessionMetadata(ctx context.Context, paymentIntentID string) (map[string]string, error)
}

// Uploader — хост медиафайлов (Cloudinary в продакшене)
type Uploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}
