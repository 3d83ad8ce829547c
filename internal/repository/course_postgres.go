package repository

import (
	"context"
	"encoding/json"
	"time"

	"coursemarket/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const publishedListKey = "courses:published"

type CourseRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCourseRepository(db *gorm.DB, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{db: db, rdb: rdb}
}

// ListPublished возвращает опубликованные курсы без контента и ростера.
// Список кешируем: каталог меняется редко.
func (r *CourseRepository) ListPublished(ctx context.Context) ([]domain.Course, error) {
	if r.rdb != nil {
		val, err := r.rdb.Get(ctx, publishedListKey).Result()
		if err == nil {
			var courses []domain.Course
			if json.Unmarshal([]byte(val), &courses) == nil {
				return courses, nil
			}
		}
	}

	var courses []domain.Course
	err := r.db.WithContext(ctx).
		Preload("Educator").
		Preload("Ratings").
		Where("published = ?", true).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	if r.rdb != nil {
		if data, err := json.Marshal(courses); err == nil {
			r.rdb.Set(ctx, publishedListKey, data, 10*time.Minute)
		}
	}

	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Educator").
		Preload("Ratings").
		Preload("Chapters", orderByPosition).
		Preload("Chapters.Lectures", orderByPosition).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetWithRoster нужен проверке записи при выставлении оценки
func (r *CourseRepository) GetWithRoster(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("EnrolledStudents").
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListByEducator(ctx context.Context, educatorID string) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.WithContext(ctx).
		Preload("EnrolledStudents").
		Where("educator_id = ?", educatorID).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return err
	}
	// Новый курс — сбрасываем кеш каталога
	if r.rdb != nil {
		r.rdb.Del(ctx, publishedListKey)
	}
	return nil
}

func (r *CourseRepository) UpdateThumbnail(ctx context.Context, id uuid.UUID, url string) error {
	err := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", id).
		Update("thumbnail", url).Error
	if err != nil {
		return err
	}
	if r.rdb != nil {
		r.rdb.Del(ctx, publishedListKey)
	}
	return nil
}

// SaveRating — одна оценка на пользователя: повторная заменяет прежнюю
func (r *CourseRepository) SaveRating(ctx context.Context, courseID uuid.UUID, userID string, value int) error {
	rating := domain.Rating{CourseID: courseID, UserID: userID, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rating).Error
}
