package repository

import (
	"context"

	"gorm.io/gorm"

	"scholaria/backend/internal/model"
)

// SessionRepository is the weekly-session data access interface.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Session, error)
	ListByClass(ctx context.Context, classID string) ([]model.Session, error)
	ListByProfessor(ctx context.Context, professorID string) ([]model.Session, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Session, error)
	ListBySlot(ctx context.Context, day int, startTime string) ([]model.Session, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Create(session).Error
	})
}

func (r *sessionRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Session{}, "session_id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Class").Preload("Room").Preload("Professor").Preload("Subject").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) ListByClass(ctx context.Context, classID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Class").Preload("Room").Preload("Professor").Preload("Subject").
		Where("class_id = ?", classID).
		Order("day, start_time").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByProfessor(ctx context.Context, professorID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Class").Preload("Room").Preload("Professor").Preload("Subject").
		Where("professor_id = ?", professorID).
		Order("day, start_time").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Class").Preload("Room").Preload("Professor").Preload("Subject").
		Joins("JOIN classes ON classes.class_id = sessions.class_id").
		Where("classes.department_id = ?", departmentID).
		Order("sessions.day, sessions.start_time").
		Find(&sessions).Error
	return sessions, err
}

// ListBySlot returns every weekly session occupying the given day and start
// time, regardless of class. Used for conflict pre-checks.
func (r *sessionRepo) ListBySlot(ctx context.Context, day int, startTime string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("day = ? AND start_time = ?", day, startTime).
		Find(&sessions).Error
	return sessions, err
}
