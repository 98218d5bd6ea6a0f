package repository

import (
	"context"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// DepartmentRepository is the department data access interface.
type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Department, error)
}

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}
