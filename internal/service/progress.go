package service

import (
	"context"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
)

type ProgressService struct {
	progress ProgressStore
}

func NewProgressService(progress ProgressStore) *ProgressService {
	return &ProgressService{progress: progress}
}

// MarkLectureComplete идемпотентна: повторная отметка той же лекции
// набор пройденных не меняет
func (s *ProgressService) MarkLectureComplete(ctx context.Context, userID string, courseID, lectureID uuid.UUID) error {
	return s.progress.MarkCompleted(ctx, userID, courseID, lectureID)
}

// GetProgress возвращает nil, если пользователь еще ничего не отмечал
func (s *ProgressService) GetProgress(ctx context.Context, userID string, courseID uuid.UUID) (*domain.CourseProgress, error) {
	return s.progress.Get(ctx, userID, courseID)
}
