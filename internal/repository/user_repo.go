package repository

import (
	"context"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// UserRepository is the user data access interface.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListStudentsByClass(ctx context.Context, classID string) ([]model.User, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListStudentsByClass(ctx context.Context, classID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND role = ?", classID, model.RoleStudent).
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}
