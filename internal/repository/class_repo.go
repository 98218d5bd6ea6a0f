package repository

import (
	"context"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// ClassRepository is the class data access interface.
type ClassRepository interface {
	GetByID(ctx context.Context, id string) (*model.Class, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Class, error)
}

type classRepo struct {
	db *gorm.DB
}

func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("name").
		Find(&classes).Error
	return classes, err
}
