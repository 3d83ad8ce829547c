package repository

import (
	"context"
	"errors"
	"time"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// MarkCompleted добавляет лекцию в набор пройденных. Запись прогресса
// создается лениво при первой отметке. FirstOrCreate, чтобы повторная
// отметка той же лекции ничего не меняла.
func (r *ProgressRepository) MarkCompleted(ctx context.Context, userID string, courseID, lectureID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress := domain.CourseProgress{UserID: userID, CourseID: courseID}
		err := tx.Where(domain.CourseProgress{UserID: userID, CourseID: courseID}).
			Attrs(domain.CourseProgress{CreatedAt: time.Now()}).
			FirstOrCreate(&progress).Error
		if err != nil {
			return err
		}

		completed := domain.CompletedLecture{
			UserID:    userID,
			CourseID:  courseID,
			LectureID: lectureID,
		}
		return tx.Where(domain.CompletedLecture{
			UserID:    userID,
			CourseID:  courseID,
			LectureID: lectureID,
		}).FirstOrCreate(&completed).Error
	})
}

// Get возвращает nil без ошибки, если прогресса еще нет
func (r *ProgressRepository) Get(ctx context.Context, userID string, courseID uuid.UUID) (*domain.CourseProgress, error) {
	var progress domain.CourseProgress
	err := r.db.WithContext(ctx).
		Preload("Completed").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
