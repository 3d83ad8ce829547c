package service

import (
	"context"
	"errors"
	"fmt"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingService struct {
	users   UserStore
	courses CourseStore
}

func NewRatingService(users UserStore, courses CourseStore) *RatingService {
	return &RatingService{users: users, courses: courses}
}

// Rate ставит оценку 1-5. Одна оценка на пользователя: повторная заменяет
// прежнюю. Оценивать можно только купленный курс.
func (s *RatingService) Rate(ctx context.Context, userID string, courseID uuid.UUID, value int) error {
	if value < 1 || value > 5 {
		return fmt.Errorf("%w: rating must be 1-5, got %d", domain.ErrInvalidInput, value)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", domain.ErrInvalidInput, userID)
		}
		return err
	}

	course, err := s.courses.GetWithRoster(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: course %s", domain.ErrInvalidInput, courseID)
		}
		return err
	}

	// Точное сравнение строковых ID
	enrolled := false
	for _, student := range course.EnrolledStudents {
		if student.ID == userID {
			enrolled = true
			break
		}
	}
	if !enrolled {
		return fmt.Errorf("%w: buy the course before rating it", domain.ErrNotEnrolled)
	}

	return s.courses.SaveRating(ctx, courseID, userID, value)
}
