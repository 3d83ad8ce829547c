package repository

import (
	"context"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// Complete переводит покупку в completed и записывает пользователя на курс.
// Все в одной транзакции: статус и обе стороны записи либо применяются
// целиком, либо откатываются и Stripe доставит событие еще раз.
// Повторная доставка по уже терминальной покупке — no-op.
func (r *PurchaseRepository) Complete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var purchase domain.Purchase
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&purchase).Error
		if err != nil {
			return err
		}

		// Терминальные статусы неизменяемы
		if purchase.Terminal() {
			return nil
		}

		var user domain.User
		if err := tx.Where("id = ?", purchase.UserID).First(&user).Error; err != nil {
			return err
		}
		var course domain.Course
		if err := tx.Where("id = ?", purchase.CourseID).First(&course).Error; err != nil {
			return err
		}

		// Одна строка join-таблицы — это обе стороны записи сразу
		err = tx.Exec(
			"INSERT INTO user_enrollments (user_id, course_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			purchase.UserID, purchase.CourseID,
		).Error
		if err != nil {
			return err
		}

		return tx.Model(&domain.Purchase{}).
			Where("id = ?", purchase.ID).
			Update("status", domain.PurchaseCompleted).Error
	})
}

// Fail помечает покупку проваленной, если она еще не терминальна
func (r *PurchaseRepository) Fail(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("id = ? AND status = ?", id, domain.PurchasePending).
		Update("status", domain.PurchaseFailed).Error
}

// ListCompletedByCourses — завершенные покупки по курсам преподавателя,
// со студентом и курсом для дашборда
func (r *PurchaseRepository) ListCompletedByCourses(ctx context.Context, courseIDs []uuid.UUID) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("course_id IN ? AND status = ?", courseIDs, domain.PurchaseCompleted).
		Order("created_at desc").
		Find(&purchases).Error
	return purchases, err
}

// TotalEarnings суммирует завершенные покупки по курсам
func (r *PurchaseRepository) TotalEarnings(ctx context.Context, courseIDs []uuid.UUID) (decimal.Decimal, error) {
	purchases, err := r.ListCompletedByCourses(ctx, courseIDs)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range purchases {
		total = total.Add(p.Amount)
	}
	return total, nil
}
