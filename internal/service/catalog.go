package service

import (
	"context"
	"errors"
	"fmt"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService — читающая поверхность каталога. На каждом читающем пути
// URL непревьюшных лекций затирается до пустой строки.
type CatalogService struct {
	users   UserStore
	courses CourseStore
}

func NewCatalogService(users UserStore, courses CourseStore) *CatalogService {
	return &CatalogService{users: users, courses: courses}
}

// ListPublished — сводная проекция: без контента и без ростера
func (s *CatalogService) ListPublished(ctx context.Context) ([]domain.Course, error) {
	return s.courses.ListPublished(ctx)
}

func (s *CatalogService) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	redactCourse(course)
	return course, nil
}

// ListEnrolled отдает курсы пользователя с той же редакцией, что и публичная
// выдача: запись на курс флаг IsPreviewFree не обходит.
func (s *CatalogService) ListEnrolled(ctx context.Context, userID string) ([]*domain.Course, error) {
	user, err := s.users.GetWithEnrollments(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		return nil, err
	}
	for _, course := range user.EnrolledCourses {
		redactCourse(course)
	}
	return user.EnrolledCourses, nil
}

func redactCourse(course *domain.Course) {
	for ci := range course.Chapters {
		lectures := course.Chapters[ci].Lectures
		for li := range lectures {
			if !lectures[li].IsPreviewFree {
				lectures[li].LectureURL = ""
			}
		}
	}
}
