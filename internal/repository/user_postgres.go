package repository

import (
	"context"

	"coursemarket/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithEnrollments подтягивает курсы пользователя вместе с главами,
// лекциями и преподавателем.
func (r *UserRepository) GetWithEnrollments(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Preload("EnrolledCourses.Educator").
		Preload("EnrolledCourses.Chapters", orderByPosition).
		Preload("EnrolledCourses.Chapters.Lectures", orderByPosition).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert идемпотентен: повторная доставка user.created не падает на дубле
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "image_url"}),
	}).Create(user).Error
}

// UpdateProfile трогает только name/email/image_url, не задевая роль и записи
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email, imageURL string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":      name,
			"email":     email,
			"image_url": imageURL,
		}).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// Delete убирает только строку пользователя. Покупки и прогресс остаются
// осиротевшими ссылками, каскада нет.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{}).Error
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
