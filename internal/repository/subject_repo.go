package repository

import (
	"context"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// SubjectRepository is the subject data access interface.
type SubjectRepository interface {
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Subject, error)
}

type subjectRepo struct {
	db *gorm.DB
}

func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Preload("Professor").
		Where("department_id = ?", departmentID).
		Order("subject_name").
		Find(&subjects).Error
	return subjects, err
}
